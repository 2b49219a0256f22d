// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"student-records/initializers"
	"student-records/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory sqlite database with the schema migrated.
// Each call gets its own named database so tests never share rows.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := initializers.ConnectToDB(initializers.DBConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, initializers.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func Float(f float64) *float64 { return &f }

func Int(i int) *int { return &i }

// Student returns a complete student input; fields can be overridden by the
// caller before use.
func Student(regNo, degree, program string, batch int) services.NewStudent {
	return services.NewStudent{
		RegisterNumber: regNo,
		Name:           "Student " + regNo,
		MobileNumber:   "9876543210",
		EmailAddress:   regNo + "@example.edu",
		Address:        "12 College Road",
		DOB:            time.Date(2003, time.May, 17, 0, 0, 0, 0, time.UTC),
		BloodGroup:     "O+",
		BatchStartYear: Int(batch),
		BatchEndYear:   Int(batch + 4),
		Degree:         degree,
		Program:        program,
		TotalSemesters: Int(8),
	}
}

func Course(code string) services.NewCourse {
	return services.NewCourse{
		Name:           "Course " + code,
		CourseCode:     code,
		Credit:         Int(4),
		OfferingDept:   "Computer Science",
		Hours:          Int(3),
		InstructorName: "Dr. Rao",
	}
}

func Evaluation(studentID, courseID uint) services.NewEvaluation {
	return services.NewEvaluation{
		StudentID:       studentID,
		CourseID:        courseID,
		CIA1:            Float(42),
		CIA2:            Float(45),
		ModelExam:       Float(80),
		Internal:        Float(9),
		Semester:        Float(71),
		TotalInternal40: Float(34.5),
		TotalExternal60: Float(42.6),
		FinalMark100:    Float(77.1),
	}
}
