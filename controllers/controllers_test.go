package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"student-records/controllers"
	"student-records/models"
	"student-records/services"
	"student-records/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type app struct {
	t       *testing.T
	db      *gorm.DB
	h       *controllers.Handler
	router  *gin.Engine
	cookies []*http.Cookie
}

func newApp(t *testing.T) *app {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	h := &controllers.Handler{
		AppName:     "Student Records",
		Students:    services.NewStudentService(db),
		Courses:     services.NewCourseService(db),
		Enrollments: services.NewEnrollmentService(db),
		Evaluations: services.NewEvaluationService(db),
		Reports:     services.NewReportService(db, 10),
	}
	return &app{t: t, db: db, h: h, router: controllers.SetupRouter(h, "test-secret")}
}

// do sends a request carrying the cookies of earlier responses, so flashes
// survive the redirect the way they do in a browser.
func (a *app) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if cs := w.Result().Cookies(); len(cs) > 0 {
		a.cookies = cs
	}
	return w
}

func (a *app) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *app) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func studentForm(regNo string) url.Values {
	return url.Values{
		"register_number":  {regNo},
		"name":             {"Asha"},
		"mobile_number":    {"9876543210"},
		"email_address":    {"asha@example.edu"},
		"address":          {"12 College Road"},
		"dob":              {"2003-05-17"},
		"blood_group":      {"B+"},
		"batch_start_year": {"2021"},
		"batch_end_year":   {"2025"},
		"degree":           {"B.Sc"},
		"program":          {"Computer Science"},
		"total_semesters":  {"6"},
	}
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDashboardEmpty(t *testing.T) {
	a := newApp(t)

	w := a.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="kpi-total">0<`)
	assert.Contains(t, body, `id="kpi-batch">N/A<`)
	assert.Contains(t, body, "No students registered yet.")
	assert.NotContains(t, body, "Plotly.newPlot")
}

func TestDashboardWithStudents(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	_, err := a.h.Students.Create(ctx, testutil.Student("R1", "B.Sc", "Physics", 2020))
	require.NoError(t, err)
	_, err = a.h.Students.Create(ctx, testutil.Student("R2", "B.Sc", "Chemistry", 2022))
	require.NoError(t, err)

	w := a.get("/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="kpi-total">2<`)
	assert.Contains(t, body, `id="kpi-programs">2<`)
	assert.Contains(t, body, `id="kpi-batch">2022<`)
	assert.Contains(t, body, "Plotly.newPlot")
}

func TestCreateStudent(t *testing.T) {
	a := newApp(t)

	w := a.post("/student", studentForm("REG-1"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/student", w.Header().Get("Location"))
	assert.EqualValues(t, 1, count(t, a.db, &models.Student{}))

	page := a.get("/student")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Student Registered Successfully!")
	assert.Contains(t, page.Body.String(), "REG-1")

	// flashes are shown once
	again := a.get("/student")
	assert.NotContains(t, again.Body.String(), "Student Registered Successfully!")
}

func TestCreateStudentDuplicate(t *testing.T) {
	a := newApp(t)

	a.post("/student", studentForm("REG-1"))
	a.get("/student")

	w := a.post("/student", studentForm("REG-1"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.EqualValues(t, 1, count(t, a.db, &models.Student{}))

	page := a.get("/student")
	assert.Contains(t, page.Body.String(), "alert-danger")
	assert.Contains(t, page.Body.String(), "already exists")
}

func TestCreateStudentMissingField(t *testing.T) {
	a := newApp(t)
	form := studentForm("REG-1")
	form.Set("name", "  ")

	w := a.post("/student", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.EqualValues(t, 0, count(t, a.db, &models.Student{}))

	page := a.get("/student")
	assert.Contains(t, page.Body.String(), "name is required")
}

func TestCreateCourse(t *testing.T) {
	a := newApp(t)
	form := url.Values{
		"name":            {"Data Structures"},
		"course_code":     {"CS201"},
		"credit":          {"0"},
		"offering_dept":   {"Computer Science"},
		"hours":           {"45"},
		"instructor_name": {"Dr. Rao"},
	}

	w := a.post("/courses", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/courses", w.Header().Get("Location"))

	page := a.get("/courses")
	assert.Contains(t, page.Body.String(), "Course Created!")
	assert.Contains(t, page.Body.String(), "CS201")
}

func TestEnrollTwice(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	stu, err := a.h.Students.Create(ctx, testutil.Student("R1", "B.Sc", "Physics", 2020))
	require.NoError(t, err)
	crs, err := a.h.Courses.Create(ctx, testutil.Course("CS101"))
	require.NoError(t, err)

	form := url.Values{"student_id": {itoa(stu.ID)}, "course_id": {itoa(crs.ID)}}

	w := a.post("/enrollments", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, a.get("/enrollments").Body.String(), "Enrolled!")

	a.post("/enrollments", form)
	page := a.get("/enrollments")
	assert.Contains(t, page.Body.String(), "alert-warning")
	assert.Contains(t, page.Body.String(), "Already Enrolled")
	assert.EqualValues(t, 1, count(t, a.db, &models.Enrollment{}))
}

func TestEnrollmentsView(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	stu, err := a.h.Students.Create(ctx, testutil.Student("R1", "B.Sc", "Physics", 2020))
	require.NoError(t, err)
	crs, err := a.h.Courses.Create(ctx, testutil.Course("CS101"))
	require.NoError(t, err)
	_, err = a.h.Enrollments.Enroll(ctx, services.NewEnrollment{StudentID: stu.ID, CourseID: crs.ID})
	require.NoError(t, err)

	t.Run("selected course", func(t *testing.T) {
		w := a.get("/enrollments?view_course_id=" + itoa(crs.ID))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `class="enroll-count">1<`)
		assert.Contains(t, w.Body.String(), "Students in CS101")
	})

	for _, q := range []string{"abc", "-1", "999"} {
		t.Run("ignored "+q, func(t *testing.T) {
			w := a.get("/enrollments?view_course_id=" + q)
			require.Equal(t, http.StatusOK, w.Code)
			assert.NotContains(t, w.Body.String(), "Students in")
		})
	}
}

func TestCreateEvaluationInvalidMark(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	stu, err := a.h.Students.Create(ctx, testutil.Student("R1", "B.Sc", "Physics", 2020))
	require.NoError(t, err)
	crs, err := a.h.Courses.Create(ctx, testutil.Course("CS101"))
	require.NoError(t, err)

	form := url.Values{
		"student_id":    {itoa(stu.ID)},
		"course_id":     {itoa(crs.ID)},
		"cia1":          {"abc"},
		"cia2":          {"45"},
		"model":         {"80"},
		"internal":      {"9"},
		"semester":      {"71"},
		"calc_internal": {"34.5"},
		"calc_external": {"42.6"},
		"calc_total":    {"77.1"},
	}
	w := a.post("/evaluation", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/evaluation", w.Header().Get("Location"))
	assert.EqualValues(t, 0, count(t, a.db, &models.Evaluation{}))
	page := a.get("/evaluation").Body.String()
	assert.Contains(t, page, "alert-danger")
	assert.Contains(t, page, "Error: cia1 must be a number")

	form.Set("cia1", "NaN")
	a.post("/evaluation", form)
	assert.EqualValues(t, 0, count(t, a.db, &models.Evaluation{}))
	assert.Contains(t, a.get("/evaluation").Body.String(), "Error: cia1 must be a finite number")

	form.Set("cia1", "42")
	a.post("/evaluation", form)
	assert.EqualValues(t, 1, count(t, a.db, &models.Evaluation{}))
	assert.Contains(t, a.get("/evaluation?course_id="+itoa(crs.ID)).Body.String(), "Marks Saved!")
}

func TestEvaluationPageComputesTotals(t *testing.T) {
	a := newApp(t)

	w := a.get("/evaluation")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="marks-form"`)
	for _, field := range []string{"calc_internal", "calc_external", "calc_total"} {
		assert.Contains(t, body, `f.elements["`+field+`"].value =`)
	}
}

func TestRequestIDHeader(t *testing.T) {
	a := newApp(t)

	w := a.get("/courses")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = a.do(req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
