package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bruce184/OCMS/internal/app/controllers"
	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/app/models/dto"
	"github.com/bruce184/OCMS/internal/middleware"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Course       *controllers.CourseController
	Class        *controllers.ClassController
	Schedule     *controllers.ScheduleController
	Student      *controllers.StudentController
	Lecturer     *controllers.LecturerController
	Assignment   *controllers.AssignmentController
	Announcement *controllers.AnnouncementController
	Attendance   *controllers.AttendanceController
	Tuition      *controllers.TuitionController
}

// SetupRouter configures all application routes. Role gates run after JWT
// auth and before the handler; ownership gates compare the :id path
// parameter with the token subject, with admins passing through.
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewMessageResponse("ok"))
	})

	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.GET("/me", authMiddleware.JWTAuth(), c.Auth.Me)
		auth.POST("/register",
			authMiddleware.JWTAuth(),
			authMiddleware.RoleRequired(models.RoleAdmin),
			c.Auth.Register)
	}

	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	lecturerOrAdmin := authMiddleware.RoleRequired(models.RoleLecturer, models.RoleAdmin)
	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)
	ownerOrAdmin := authMiddleware.OwnershipRequired("id")

	courses := authenticated.Group("/courses")
	{
		courses.GET("", c.Course.ListCourses)
		courses.GET("/:id", c.Course.GetCourse)
		courses.GET("/:id/classes", c.Course.ListCourseClasses)
		courses.POST("", adminOnly, c.Course.CreateCourse)
		courses.PUT("/:id", adminOnly, c.Course.UpdateCourse)
		courses.DELETE("/:id", adminOnly, c.Course.DeleteCourse)
	}

	semesters := authenticated.Group("/semesters")
	{
		semesters.GET("", c.Course.ListSemesters)
		semesters.POST("", adminOnly, c.Course.CreateSemester)
		semesters.DELETE("/:code/:year", adminOnly, c.Course.DeleteSemester)
	}

	classes := authenticated.Group("/classes")
	{
		classes.GET("", c.Class.List)
		classes.GET("/:id", c.Class.Get)
		classes.POST("", adminOnly, c.Class.Create)
		classes.PUT("/:id", adminOnly, c.Class.Update)
		classes.DELETE("/:id", adminOnly, c.Class.Delete)
		classes.POST("/:id/instructors", adminOnly, c.Class.AssignInstructor)
		classes.POST("/:id/enroll", studentOnly, c.Class.Enroll)
		classes.DELETE("/:id/enroll", studentOnly, c.Class.Unenroll)
		classes.GET("/:id/enrollments", lecturerOrAdmin, c.Class.Roster)
		classes.PUT("/:id/grades", lecturerOrAdmin, c.Class.SetGrade)
	}

	schedules := authenticated.Group("/schedules")
	{
		schedules.GET("", c.Schedule.List)
		schedules.GET("/:id", c.Schedule.Get)
		schedules.POST("", adminOnly, c.Schedule.Create)
		schedules.PUT("/:id", adminOnly, c.Schedule.Update)
		schedules.DELETE("/:id", adminOnly, c.Schedule.Delete)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", adminOnly, c.Student.List)
		students.GET("/:id", ownerOrAdmin, c.Student.Get)
		students.GET("/:id/enrollments", ownerOrAdmin, c.Student.Enrollments)
		students.GET("/:id/schedule", ownerOrAdmin, c.Student.Schedule)
		students.GET("/:id/assignments", ownerOrAdmin, c.Student.Assignments)
		students.GET("/:id/attendance", ownerOrAdmin, c.Student.Attendance)
		students.GET("/:id/tuition", ownerOrAdmin, c.Student.Tuition)
	}

	lecturers := authenticated.Group("/lecturers")
	{
		lecturers.GET("", adminOnly, c.Lecturer.List)
		lecturers.GET("/:id", ownerOrAdmin, c.Lecturer.Get)
		lecturers.GET("/:id/classes", ownerOrAdmin, c.Lecturer.Classes)
	}

	assignments := authenticated.Group("/assignments")
	{
		assignments.GET("", c.Assignment.List)
		assignments.GET("/:id", c.Assignment.Get)
		assignments.POST("", lecturerOrAdmin, c.Assignment.Create)
		assignments.PUT("/:id", lecturerOrAdmin, c.Assignment.Update)
		assignments.DELETE("/:id", lecturerOrAdmin, c.Assignment.Delete)
		assignments.POST("/:id/submissions", studentOnly, c.Assignment.Submit)
		assignments.GET("/:id/submissions", lecturerOrAdmin, c.Assignment.ListSubmissions)
		assignments.PUT("/:id/grade", lecturerOrAdmin, c.Assignment.Grade)
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", c.Announcement.List)
		announcements.GET("/:id", c.Announcement.Get)
		announcements.POST("", lecturerOrAdmin, c.Announcement.Create)
		announcements.PUT("/:id", lecturerOrAdmin, c.Announcement.Update)
		announcements.DELETE("/:id", lecturerOrAdmin, c.Announcement.Delete)
	}

	attendance := authenticated.Group("/attendance")
	{
		attendance.POST("", lecturerOrAdmin, c.Attendance.Record)
		attendance.GET("/schedule/:id", lecturerOrAdmin, c.Attendance.ListBySchedule)
	}

	tuition := authenticated.Group("/tuition")
	{
		tuition.GET("", adminOnly, c.Tuition.List)
		tuition.GET("/:id", adminOnly, c.Tuition.Get)
		tuition.POST("", adminOnly, c.Tuition.Create)
		tuition.PUT("/:id", adminOnly, c.Tuition.Update)
	}
}
