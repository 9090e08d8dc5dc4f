package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bruce184/OCMS/internal/app/controllers"
	"github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/app/repositories/memstore"
	"github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/middleware"
	"github.com/bruce184/OCMS/internal/pkg/auth"
	"github.com/bruce184/OCMS/internal/seed"
)

// setupTestRouter wires the full API against a seeded in-memory store.
func setupTestRouter(t *testing.T) (*gin.Engine, *repositories.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := memstore.NewRepositories(memstore.NewStore())
	if err := seed.Apply(context.Background(), repos); err != nil {
		t.Fatalf("seed.Apply() error = %v", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "ocms-test",
	})

	authService := services.NewAuthService(repos.Users, jwtService)
	courseService := services.NewCourseService(repos.Courses, repos.Semesters, repos.Classes)
	classService := services.NewClassService(repos.Classes, repos.Enrollments, repos.Users)
	scheduleService := services.NewScheduleService(repos.Schedules)
	studentService := services.NewStudentService(repos.Users, repos.Enrollments, repos.Schedules, repos.Assignments, repos.Attendance, repos.Tuition)
	lecturerService := services.NewLecturerService(repos.Users, repos.Classes)
	assignmentService := services.NewAssignmentService(repos.Assignments, repos.Enrollments, repos.Classes)
	announcementService := services.NewAnnouncementService(repos.Announcements, repos.Enrollments, repos.Classes)
	attendanceService := services.NewAttendanceService(repos.Attendance, repos.Schedules, repos.Enrollments, repos.Classes)
	tuitionService := services.NewTuitionService(repos.Tuition, repos.Users)

	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:         controllers.NewAuthController(authService),
		Course:       controllers.NewCourseController(courseService),
		Class:        controllers.NewClassController(classService),
		Schedule:     controllers.NewScheduleController(scheduleService),
		Student:      controllers.NewStudentController(studentService),
		Lecturer:     controllers.NewLecturerController(lecturerService),
		Assignment:   controllers.NewAssignmentController(assignmentService),
		Announcement: controllers.NewAnnouncementController(announcementService),
		Attendance:   controllers.NewAttendanceController(attendanceService),
		Tuition:      controllers.NewTuitionController(tuitionService),
	}, middleware.NewAuthMiddleware(jwtService, repos.Users))
	return router, repos
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	rec := doRequest(router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": seed.DemoPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login(%s) status = %d, body = %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login(%s) decode error = %v", username, err)
	}
	if resp.Data.Token == "" {
		t.Fatalf("login(%s) returned no token", username)
	}
	return resp.Data.Token
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	rec := doRequest(router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name     string
		body     gin.H
		wantCode int
	}{
		{name: "valid credentials", body: gin.H{"username": "student1", "password": seed.DemoPassword}, wantCode: http.StatusOK},
		{name: "wrong password", body: gin.H{"username": "student1", "password": "nope"}, wantCode: http.StatusUnauthorized},
		{name: "unknown user", body: gin.H{"username": "nobody", "password": seed.DemoPassword}, wantCode: http.StatusUnauthorized},
		{name: "missing fields", body: gin.H{"username": "student1"}, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodPost, "/api/auth/login", "", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestAuthenticationGate(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/courses", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, router, "student1")
	rec = doRequest(router, http.MethodGet, "/api/courses", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleGates(t *testing.T) {
	router, _ := setupTestRouter(t)
	studentToken := login(t, router, "student1")
	lecturerToken := login(t, router, "dr.smith")
	adminToken := login(t, router, "admin")

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     interface{}
		wantCode int
	}{
		{name: "student cannot create course", method: http.MethodPost, path: "/api/courses", token: studentToken,
			body: gin.H{"courseCode": "BIO101", "courseName": "Biology I", "credit": 3, "courseType": "L"}, wantCode: http.StatusForbidden},
		{name: "lecturer cannot create course", method: http.MethodPost, path: "/api/courses", token: lecturerToken,
			body: gin.H{"courseCode": "BIO101", "courseName": "Biology I", "credit": 3, "courseType": "L"}, wantCode: http.StatusForbidden},
		{name: "admin creates course", method: http.MethodPost, path: "/api/courses", token: adminToken,
			body: gin.H{"courseCode": "BIO101", "courseName": "Biology I", "credit": 3, "courseType": "L"}, wantCode: http.StatusCreated},
		{name: "student cannot list tuition", method: http.MethodGet, path: "/api/tuition", token: studentToken, wantCode: http.StatusForbidden},
		{name: "lecturer cannot enroll", method: http.MethodPost, path: "/api/classes/CS101-F24-01/enroll", token: lecturerToken, wantCode: http.StatusForbidden},
		{name: "student cannot register accounts", method: http.MethodPost, path: "/api/auth/register", token: studentToken,
			body: gin.H{"userId": "STU900", "username": "s900", "password": "password123", "fullName": "X", "role": "student"}, wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestOwnershipGate(t *testing.T) {
	router, _ := setupTestRouter(t)
	studentToken := login(t, router, "student1")
	adminToken := login(t, router, "admin")

	// A student reads their own record but not another student's.
	rec := doRequest(router, http.MethodGet, "/api/students/STU001", studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/api/students/STU002", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/students/STU002", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestEnrollmentFlow(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := login(t, router, "student4")

	// STU004 is not enrolled in PHYS101 yet.
	rec := doRequest(router, http.MethodPost, "/api/classes/PHYS101-F24-01/enroll", token, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(router, http.MethodPost, "/api/classes/PHYS101-F24-01/enroll", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/api/classes/PHYS101-F24-01/enroll", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(router, http.MethodDelete, "/api/classes/PHYS101-F24-01/enroll", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/classes/NOPE-01/enroll", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// A valid token whose subject no longer exists must stop working, since the
// auth middleware reloads the live user row on every request.
func TestDeletedAccountLosesAccess(t *testing.T) {
	router, repos := setupTestRouter(t)
	adminToken := login(t, router, "admin")

	rec := doRequest(router, http.MethodPost, "/api/auth/register", adminToken, gin.H{
		"userId":   "STU900",
		"username": "temp900",
		"password": seed.DemoPassword,
		"fullName": "Temp Account",
		"role":     "student",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tempToken := login(t, router, "temp900")
	rec = doRequest(router, http.MethodGet, "/api/auth/me", tempToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	if err := repos.Users.Delete(context.Background(), "STU900"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	rec = doRequest(router, http.MethodGet, "/api/auth/me", tempToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}
