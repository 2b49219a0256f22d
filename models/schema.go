package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	RegisterNumber string    `gorm:"size:50;uniqueIndex;not null"`
	Name           string    `gorm:"size:100;not null"`
	MobileNumber   string    `gorm:"size:20;not null"`
	EmailAddress   string    `gorm:"size:120;not null"`
	Address        string    `gorm:"type:text;not null"`
	DOB            time.Time `gorm:"column:dob;type:date;not null"`
	BloodGroup     string    `gorm:"size:5;not null"`
	BatchStartYear int       `gorm:"not null;index"`
	BatchEndYear   int       `gorm:"not null"`
	Degree         string    `gorm:"size:20;not null;index"`
	Program        string    `gorm:"size:100;not null"`
	TotalSemesters int       `gorm:"not null"`
}

type Course struct {
	gorm.Model
	Name           string `gorm:"size:100;not null"`
	CourseCode     string `gorm:"size:20;uniqueIndex;not null"`
	Credit         int    `gorm:"not null"`
	OfferingDept   string `gorm:"size:50;not null"`
	Hours          int    `gorm:"not null"`
	InstructorName string `gorm:"size:100;not null"`
}

// Enrollment links one student to one course. The pair is the primary key,
// so a student can be enrolled in a given course at most once.
type Enrollment struct {
	StudentID  uint      `gorm:"primaryKey;autoIncrement:false"`
	CourseID   uint      `gorm:"primaryKey;autoIncrement:false;index"`
	EnrolledAt time.Time `gorm:"autoCreateTime"`

	// belongs-to, only declared so AutoMigrate creates the foreign keys
	Student Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Course  Course  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// Evaluation holds the marks of one student in one course. The three totals
// are supplied by the form and stored as given.
type Evaluation struct {
	gorm.Model
	StudentID       uint    `gorm:"not null;index"`
	CourseID        uint    `gorm:"not null;index"`
	CIA1            float64 `gorm:"column:cia1;not null"`
	CIA2            float64 `gorm:"column:cia2;not null"`
	ModelExam       float64 `gorm:"column:model;not null"`
	Internal        float64 `gorm:"not null"`
	Semester        float64 `gorm:"not null"`
	TotalInternal40 float64 `gorm:"column:total_internal_40;not null"`
	TotalExternal60 float64 `gorm:"column:total_external_60;not null"`
	FinalMark100    float64 `gorm:"column:final_mark_100;not null"`

	Student Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Course  Course  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// All lists every model managed by the schema migration.
func All() []interface{} {
	return []interface{}{&Student{}, &Course{}, &Enrollment{}, &Evaluation{}}
}
