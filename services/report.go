package services

import (
	"context"
	"database/sql"
	"strconv"

	"student-records/charts"
	"student-records/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const noBatch = "N/A"

// Dashboard is the aggregate view over the whole student collection. With no
// students the counts are zero, LatestBatch is "N/A" and every chart is nil.
type Dashboard struct {
	TotalStudents  int64
	UniquePrograms int
	LatestBatch    string
	DegreeChart    *charts.Chart
	ProgramChart   *charts.Chart
	BatchChart     *charts.Chart
	RecentStudents []models.Student
}

type ReportService struct {
	db     *gorm.DB
	recent int
}

// NewReportService returns a reporter whose dashboard lists up to recent of
// the newest students.
func NewReportService(db *gorm.DB, recent int) *ReportService {
	return &ReportService{db: db, recent: recent}
}

type groupCount struct {
	Label string
	Count int
}

type yearCount struct {
	Year  int
	Count int
}

// snapshot keeps the dashboard reads consistent with one another on stores
// that honour the isolation level.
var snapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// Dashboard recomputes every distribution from the student table.
func (s *ReportService) Dashboard(ctx context.Context) (Dashboard, error) {
	dash := Dashboard{LatestBatch: noBatch}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.fill(tx, &dash)
	}, snapshot)
	if err != nil {
		return Dashboard{}, err
	}
	return dash, nil
}

func (s *ReportService) fill(tx *gorm.DB, dash *Dashboard) error {
	if err := tx.Model(&models.Student{}).Count(&dash.TotalStudents).Error; err != nil {
		return errors.Wrap(err, "count students")
	}
	if dash.TotalStudents == 0 {
		return nil
	}

	degrees, err := countBy(tx, "degree")
	if err != nil {
		return err
	}
	programs, err := countBy(tx, "program")
	if err != nil {
		return err
	}

	var batches []yearCount
	err = tx.Model(&models.Student{}).
		Select("batch_start_year AS year, COUNT(*) AS count").
		Group("batch_start_year").
		Order("batch_start_year ASC").
		Scan(&batches).Error
	if err != nil {
		return errors.Wrap(err, "count students by batch")
	}

	dash.UniquePrograms = len(programs)
	dash.DegreeChart = &charts.Chart{
		Kind: charts.Bar, Title: "By Degree", XLabel: "Degree", YLabel: "Count",
		Points: toPoints(degrees),
	}
	dash.ProgramChart = &charts.Chart{
		Kind: charts.Pie, Title: "By Program",
		Points: toPoints(programs),
	}

	batchPoints := make([]charts.Point, 0, len(batches))
	for _, b := range batches {
		batchPoints = append(batchPoints, charts.Point{Label: strconv.Itoa(b.Year), Count: b.Count})
	}
	dash.BatchChart = &charts.Chart{
		Kind: charts.Line, Title: "Enrollment Growth", XLabel: "Batch", YLabel: "Count",
		Points: batchPoints,
	}
	if n := len(batches); n > 0 {
		// ascending order, so the last row is the latest batch
		dash.LatestBatch = strconv.Itoa(batches[n-1].Year)
	}

	if s.recent > 0 {
		err = tx.Scopes(NewestFirst.scope()).Limit(s.recent).Find(&dash.RecentStudents).Error
		if err != nil {
			return errors.Wrap(err, "list recent students")
		}
	}
	return nil
}

func countBy(db *gorm.DB, column string) ([]groupCount, error) {
	var rows []groupCount
	err := db.Model(&models.Student{}).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Order(column + " ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "count students by %s", column)
	}
	return rows, nil
}

func toPoints(rows []groupCount) []charts.Point {
	points := make([]charts.Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, charts.Point{Label: r.Label, Count: r.Count})
	}
	return points
}
