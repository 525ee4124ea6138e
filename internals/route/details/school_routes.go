package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	groupRoute "futbolokulu_backend/internals/features/students/groups/route"
	studentRoute "futbolokulu_backend/internals/features/students/students/route"
	studentService "futbolokulu_backend/internals/features/students/students/service"
	trainingRoute "futbolokulu_backend/internals/features/trainings/attendance/route"
	trainingService "futbolokulu_backend/internals/features/trainings/attendance/service"
)

// SchoolRoutes: /api/groups, /api/students, /api/trainings.
func SchoolRoutes(api fiber.Router, authMw fiber.Handler, db *gorm.DB, students *studentService.StudentService, trainings *trainingService.TrainingService) {
	groupRoute.GroupRoutes(api, authMw, db)
	studentRoute.StudentRoutes(api, authMw, students)
	trainingRoute.TrainingRoutes(api, authMw, trainings)
}
