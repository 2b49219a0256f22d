package services_test

import (
	"context"
	"testing"

	"student-records/charts"
	"student-records/services"
	"student-records/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDashboardEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	dash, err := services.NewReportService(db, 5).Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 0, dash.TotalStudents)
	assert.Equal(t, 0, dash.UniquePrograms)
	assert.Equal(t, "N/A", dash.LatestBatch)
	assert.Nil(t, dash.DegreeChart)
	assert.Nil(t, dash.ProgramChart)
	assert.Nil(t, dash.BatchChart)
	assert.Empty(t, dash.RecentStudents)
}

func TestDashboardGroupings(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	students := services.NewStudentService(db)

	for _, in := range []services.NewStudent{
		testutil.Student("A", "CS", "Software", 2021),
		testutil.Student("B", "CS", "Data Science", 2020),
		testutil.Student("C", "EE", "Software", 2020),
	} {
		_, err := students.Create(ctx, in)
		require.NoError(t, err)
	}

	dash, err := services.NewReportService(db, 2).Dashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 3, dash.TotalStudents)
	assert.Equal(t, 2, dash.UniquePrograms)
	assert.Equal(t, "2021", dash.LatestBatch)

	require.NotNil(t, dash.DegreeChart)
	assert.Equal(t, charts.Bar, dash.DegreeChart.Kind)
	assert.ElementsMatch(t, []charts.Point{{Label: "CS", Count: 2}, {Label: "EE", Count: 1}}, dash.DegreeChart.Points)

	require.NotNil(t, dash.ProgramChart)
	assert.Equal(t, charts.Pie, dash.ProgramChart.Kind)
	assert.ElementsMatch(t, []charts.Point{{Label: "Software", Count: 2}, {Label: "Data Science", Count: 1}}, dash.ProgramChart.Points)

	// the line series must stay in year order
	require.NotNil(t, dash.BatchChart)
	assert.Equal(t, charts.Line, dash.BatchChart.Kind)
	assert.Equal(t, []charts.Point{{Label: "2020", Count: 2}, {Label: "2021", Count: 1}}, dash.BatchChart.Points)

	require.Len(t, dash.RecentStudents, 2)
	assert.Equal(t, "C", dash.RecentStudents[0].RegisterNumber)
	assert.Equal(t, "B", dash.RecentStudents[1].RegisterNumber)
}

func TestDashboardReadsShareOneTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, err := services.NewStudentService(db).Create(ctx, testutil.Student("A", "CS", "Software", 2021))
	require.NoError(t, err)

	var pools []gorm.ConnPool
	record := func(tx *gorm.DB) { pools = append(pools, tx.Statement.ConnPool) }
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:record_pool", record))
	require.NoError(t, db.Callback().Row().Before("gorm:row").Register("test:record_pool", record))

	dash, err := services.NewReportService(db, 5).Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dash.TotalStudents)

	// count, degree, program, batch and recent students
	require.Len(t, pools, 5)
	_, inTx := pools[0].(gorm.TxCommitter)
	assert.True(t, inTx)
	for _, p := range pools[1:] {
		assert.Same(t, pools[0], p)
	}
}
