package controller_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/controller"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/middleware"
	"github.com/vibast-solutions/ms-go-skillbase/app/repository"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
)

const (
	insertCategoryQuery     = `INSERT INTO categories \(id, name, created_at, updated_at\) VALUES`
	insertSubcategoryQuery  = `INSERT INTO subcategories \(id, name, created_at, updated_at\) VALUES`
	findCourseQuery         = `(?s)SELECT id, instructor_id, .+ FROM courses WHERE id = \?`
	findSectionQuery        = `(?s)SELECT id, course_id, title, lecture_ids_json, created_at, updated_at\s+FROM sections WHERE id = \?`
	findQuizQuery           = `SELECT id, section_id, .+ FROM quizzes WHERE id = \?`
	insertQuizQuestionQuery = `(?s)INSERT INTO quiz_questions \(id, quiz_id, question, options_json, answer, marks, created_at, updated_at\)`
	findCartQuery           = `(?s)SELECT id, learner_id, course_ids_json, created_at, updated_at\s+FROM carts WHERE learner_id = \?`
	findAccountByLearner    = `(?s)SELECT id, email, password_hash, role, .+ FROM accounts WHERE learner_id = \?`
)

const (
	testCourseID     = "0d6f1c2e-3b4a-4c5d-8e9f-a0b1c2d3e4f5"
	testSectionID    = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	testQuizID       = "5c4b3a29-1807-4f6e-9d5c-4b3a29180706"
	testInstructorID = "e1d2c3b4-a596-4877-8695-a4b3c2d1e0f9"
)

type blobRecorder struct {
	keys []string
}

func (b *blobRecorder) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	b.keys = append(b.keys, key)
	return "https://cdn.skillbase.test/" + key, nil
}

func newCatalogControllerWithMock(t *testing.T) (*controller.CatalogController, sqlmock.Sqlmock, *blobRecorder, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	blobs := &blobRecorder{}
	media := service.NewMediaUploader(blobs, nil)
	courses := repository.NewCourseRepository(db)
	catalog := service.NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewSubcategoryRepository(db),
		courses,
		repository.NewProfileRepository(db),
		media,
		nil,
	)
	curriculum := service.NewCurriculumService(
		courses,
		repository.NewSectionRepository(db),
		repository.NewSectionContentRepository(db),
		media,
		nil,
	)

	return controller.NewCatalogController(catalog, curriculum), mock, blobs, func() { _ = db.Close() }
}

func newMultipartRequest(t *testing.T, path string, fields map[string]string, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err = part.Write(content); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, httptest.NewRecorder()
}

func sectionRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "course_id", "title", "lecture_ids_json", "created_at", "updated_at"}).
		AddRow(testSectionID, testCourseID, "Basics", "[]", now, now)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	mock.ExpectExec(insertCategoryQuery).WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	req, rec := newJSONRequest(t, http.MethodPost, "/api/categories", map[string]string{"name": "Design"})
	if err := ctrl.CreateCategory(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeEnvelope(t, rec); body.Message != service.ErrCategoryExists.Error() {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestCreateSubcategory_Duplicate(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	mock.ExpectExec(insertSubcategoryQuery).WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	req, rec := newJSONRequest(t, http.MethodPost, "/api/subcategories", map[string]string{"name": "Concurrency"})
	if err := ctrl.CreateSubcategory(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeEnvelope(t, rec); body.Message != service.ErrSubcategoryExists.Error() {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListSubcategories(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, created_at, updated_at FROM subcategories ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).AddRow("sub-1", "Concurrency", now, now))

	req := httptest.NewRequest(http.MethodGet, "/api/subcategories", nil)
	rec := httptest.NewRecorder()
	if err := ctrl.ListSubcategories(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeEnvelope(t, rec); body.Message != "Successfully got all subcategories" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func quizQuestionBody() map[string]any {
	return map[string]any{
		"quizReference": testQuizID,
		"question":      "Which keyword starts a goroutine?",
		"options":       []string{"go", "defer"},
		"answer":        "go",
		"marks":         2,
	}
}

func TestCreateQuizQuestion_UnknownQuiz(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findQuizQuery).WithArgs(testQuizID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id", "title", "total_marks", "pass_marks", "created_at", "updated_at"}))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/quiz-questions", quizQuestionBody())
	if err := ctrl.CreateQuizQuestion(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeEnvelope(t, rec); body.Message != service.ErrQuizNotFound.Error() {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateQuizQuestion_Stored(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findQuizQuery).WithArgs(testQuizID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id", "title", "total_marks", "pass_marks", "created_at", "updated_at"}).
			AddRow(testQuizID, testSectionID, "Check", 10, 6, now, now))
	mock.ExpectExec(insertQuizQuestionQuery).
		WithArgs(sqlmock.AnyArg(), testQuizID, "Which keyword starts a goroutine?", `["go","defer"]`, "go", 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/quiz-questions", quizQuestionBody())
	if err := ctrl.CreateQuizQuestion(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateQuizQuestion_MarksNotNumeric(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	body := quizQuestionBody()
	body["marks"] = "two"
	req, rec := newJSONRequest(t, http.MethodPost, "/api/quiz-questions", body)
	if err := ctrl.CreateQuizQuestion(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestUpdateCourse_OtherInstructorForbidden(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findCourseQuery).WithArgs(testCourseID).WillReturnRows(sqlmock.NewRows([]string{
		"id", "instructor_id", "category_id", "title", "description", "language", "is_approved",
		"thumbnail", "promo_video", "section_ids_json", "created_at", "updated_at",
	}).AddRow(testCourseID, testInstructorID, "cat-1", "Go", "desc", "en", false, nil, nil, "[]", now, now))

	req, rec := newJSONRequest(t, http.MethodPatch, "/api/courses/"+testCourseID, map[string]string{"title": "Mine now"})
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(testCourseID)
	ctx.Set(middleware.ContextKeyClaims, &service.Claims{
		AccountID: "someone-else",
		Role:      entity.RoleInstructor,
		ProfileID: "another-instructor",
	})

	if err := ctrl.UpdateCourse(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	ctrl, mock, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findCourseQuery).
		WithArgs(testCourseID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/api/courses/"+testCourseID, nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(testCourseID)

	if err := ctrl.GetCourse(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreateLecture_UnsupportedFile(t *testing.T) {
	ctrl, mock, blobs, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findSectionQuery).WithArgs(testSectionID).WillReturnRows(sectionRows())

	req, rec := newMultipartRequest(t, "/api/lectures", map[string]string{
		"sectionReference": testSectionID,
		"title":            "Intro",
	}, "setup.exe", []byte("MZ"))
	if err := ctrl.CreateLecture(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(blobs.keys) != 0 {
		t.Fatalf("expected nothing stored, got %v", blobs.keys)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateLecture_MissingFile(t *testing.T) {
	ctrl, _, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	req, rec := newMultipartRequest(t, "/api/lectures", map[string]string{
		"sectionReference": testSectionID,
		"title":            "Intro",
	}, "", nil)
	if err := ctrl.CreateLecture(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestCreateLecture_NotMultipart(t *testing.T) {
	ctrl, _, _, cleanup := newCatalogControllerWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/api/lectures", map[string]string{"title": "Intro"})
	if err := ctrl.CreateLecture(echo.New().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCourseListAdd_UnknownLearner(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	lists := service.NewCourseListService(
		repository.NewCourseListRepository(db, repository.CourseListCart),
		repository.NewProfileRepository(db),
		repository.NewCourseRepository(db),
		nil,
	)
	ctrl := controller.NewCourseListController(lists, "cart")

	mock.ExpectQuery(findLearnerQuery).WithArgs(testLearnerID).WillReturnRows(sqlmock.NewRows(profileColumns))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/carts", map[string]string{
		"learnerReference": testLearnerID,
		"courseReference":  testCourseID,
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.Set(middleware.ContextKeyClaims, &service.Claims{Role: entity.RoleAdmin})
	if err := ctrl.Add(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCourseListGet_NoList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	lists := service.NewCourseListService(
		repository.NewCourseListRepository(db, repository.CourseListCart),
		repository.NewProfileRepository(db),
		repository.NewCourseRepository(db),
		nil,
	)
	ctrl := controller.NewCourseListController(lists, "cart")

	expectLearnerProfile(mock)
	mock.ExpectQuery(findCartQuery).WithArgs(testLearnerID).WillReturnRows(
		sqlmock.NewRows([]string{"id", "learner_id", "course_ids_json", "created_at", "updated_at"}))

	req := httptest.NewRequest(http.MethodGet, "/api/carts/"+testLearnerID, nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("learnerId")
	ctx.SetParamValues(testLearnerID)
	ctx.Set(middleware.ContextKeyClaims, &service.Claims{
		AccountID: testAccountID,
		Role:      entity.RoleLearner,
		ProfileID: testLearnerID,
	})

	if err := ctrl.Get(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCourseListAdd_OtherLearnerForbidden(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	lists := service.NewCourseListService(
		repository.NewCourseListRepository(db, repository.CourseListWishlist),
		repository.NewProfileRepository(db),
		repository.NewCourseRepository(db),
		nil,
	)
	ctrl := controller.NewCourseListController(lists, "wishlist")

	req, rec := newJSONRequest(t, http.MethodPost, "/api/wishlists", map[string]string{
		"learnerReference": testLearnerID,
		"courseReference":  testCourseID,
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.Set(middleware.ContextKeyClaims, &service.Claims{
		AccountID: "someone-else",
		Role:      entity.RoleLearner,
		ProfileID: "another-learner",
	})

	if err := ctrl.Add(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func newProfileController(t *testing.T) (*controller.ProfileController, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	profiles := service.NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewAccountRepository(db),
		service.NewMediaUploader(&blobRecorder{}, nil),
		nil,
	)
	return controller.NewProfileController(profiles, entity.ProfileKindLearner), mock, func() { _ = db.Close() }
}

func TestProfileDelete_OtherLearnerForbidden(t *testing.T) {
	ctrl, mock, cleanup := newProfileController(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodDelete, "/api/learners/"+testLearnerID, nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(testLearnerID)
	ctx.Set(middleware.ContextKeyClaims, &service.Claims{
		AccountID: "someone-else",
		Role:      entity.RoleLearner,
		ProfileID: "another-learner",
	})

	if err := ctrl.Delete(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestProfileDelete_Owner(t *testing.T) {
	ctrl, mock, cleanup := newProfileController(t)
	defer cleanup()

	mock.ExpectQuery(findAccountByLearner).WithArgs(testLearnerID).WillReturnRows(accountRows(storedLearner(t)))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM accounts WHERE id = \?`).WithArgs(testAccountID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM learners WHERE id = \?`).WithArgs(testLearnerID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodDelete, "/api/learners/"+testLearnerID, nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(testLearnerID)
	ctx.Set(middleware.ContextKeyClaims, &service.Claims{
		AccountID: testAccountID,
		Role:      entity.RoleLearner,
		ProfileID: testLearnerID,
	})

	if err := ctrl.Delete(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
