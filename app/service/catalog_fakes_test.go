package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"

	"github.com/go-sql-driver/mysql"
)

var errDuplicate = &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

// fakeCatalog stores categories, courses, sections, section content and learner lists.
type fakeCatalog struct {
	mu            sync.Mutex
	categories    map[string]entity.Category
	courses       map[string]entity.Course
	sections      map[string]entity.Section
	lectures      map[string]entity.Lecture
	quizzes       map[string]entity.Quiz
	questions     map[string]entity.QuizQuestion
	assignments   map[string]entity.Assignment
	lists         map[string]entity.CourseList
	subscriptions []entity.Subscription
	reviews       []entity.Review
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		categories:  map[string]entity.Category{},
		courses:     map[string]entity.Course{},
		sections:    map[string]entity.Section{},
		lectures:    map[string]entity.Lecture{},
		quizzes:     map[string]entity.Quiz{},
		questions:   map[string]entity.QuizQuestion{},
		assignments: map[string]entity.Assignment{},
		lists:       map[string]entity.CourseList{},
	}
}

func cloneIDs(ids []string) []string {
	return append([]string{}, ids...)
}

type fakeCategories struct{ *fakeCatalog }

func (f fakeCategories) Create(_ context.Context, category *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return errDuplicate
		}
	}
	f.categories[category.ID] = *category
	return nil
}

func (f fakeCategories) FindByID(_ context.Context, id string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return &category, nil
}

func (f fakeCategories) FindAll(_ context.Context) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	categories := make([]*entity.Category, 0, len(f.categories))
	for _, category := range f.categories {
		c := category
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

type fakeCourses struct{ *fakeCatalog }

func (f fakeCourses) Create(_ context.Context, course *entity.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *course
	stored.SectionIDs = cloneIDs(course.SectionIDs)
	f.courses[course.ID] = stored
	return nil
}

func (f fakeCourses) FindByID(_ context.Context, id string) (*entity.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	course.SectionIDs = cloneIDs(course.SectionIDs)
	return &course, nil
}

func (f fakeCourses) FindAll(_ context.Context, instructorID string) ([]*entity.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	courses := make([]*entity.Course, 0)
	for _, course := range f.courses {
		if instructorID != "" && course.InstructorID != instructorID {
			continue
		}
		c := course
		courses = append(courses, &c)
	}
	return courses, nil
}

func (f fakeCourses) Update(ctx context.Context, course *entity.Course) error {
	return f.Create(ctx, course)
}

type fakeSections struct{ *fakeCatalog }

func (f fakeSections) CreateForCourse(_ context.Context, section *entity.Section, course *entity.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sections[section.ID] = *section
	course.SectionIDs = append(course.SectionIDs, section.ID)
	stored := *course
	stored.SectionIDs = cloneIDs(course.SectionIDs)
	f.courses[course.ID] = stored
	return nil
}

func (f fakeSections) FindByID(_ context.Context, id string) (*entity.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	section, ok := f.sections[id]
	if !ok {
		return nil, nil
	}
	section.LectureIDs = cloneIDs(section.LectureIDs)
	return &section, nil
}

func (f fakeSections) FindByCourse(_ context.Context, courseID string) ([]*entity.Section, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sections := make([]*entity.Section, 0)
	for _, section := range f.sections {
		if section.CourseID == courseID {
			s := section
			sections = append(sections, &s)
		}
	}
	return sections, nil
}

func (f fakeSections) Update(_ context.Context, section *entity.Section) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *section
	stored.LectureIDs = cloneIDs(section.LectureIDs)
	f.sections[section.ID] = stored
	return nil
}

func (f fakeSections) DeleteFromCourse(_ context.Context, section *entity.Section, course *entity.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, lecture := range f.lectures {
		if lecture.SectionID == section.ID {
			delete(f.lectures, id)
		}
	}
	delete(f.sections, section.ID)

	remaining := make([]string, 0, len(course.SectionIDs))
	for _, id := range course.SectionIDs {
		if id != section.ID {
			remaining = append(remaining, id)
		}
	}
	course.SectionIDs = remaining
	f.courses[course.ID] = *course
	return nil
}

type fakeSectionContent struct{ *fakeCatalog }

func (f fakeSectionContent) CreateLecture(_ context.Context, lecture *entity.Lecture, section *entity.Section) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lectures[lecture.ID] = *lecture
	section.LectureIDs = append(section.LectureIDs, lecture.ID)
	stored := *section
	stored.LectureIDs = cloneIDs(section.LectureIDs)
	f.sections[section.ID] = stored
	return nil
}

func (f fakeSectionContent) CreateQuiz(_ context.Context, quiz *entity.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quizzes[quiz.ID] = *quiz
	return nil
}

func (f fakeSectionContent) FindQuizByID(_ context.Context, id string) (*entity.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, nil
	}
	return &quiz, nil
}

func (f fakeSectionContent) CreateQuizQuestion(_ context.Context, question *entity.QuizQuestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *question
	stored.Options = cloneIDs(question.Options)
	f.questions[question.ID] = stored
	return nil
}

func (f fakeSectionContent) CreateAssignment(_ context.Context, assignment *entity.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignments[assignment.ID] = *assignment
	return nil
}

type fakeCourseLists struct{ *fakeCatalog }

func (f fakeCourseLists) FindByLearner(_ context.Context, learnerID string) (*entity.CourseList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list, ok := f.lists[learnerID]
	if !ok {
		return nil, nil
	}
	list.CourseIDs = cloneIDs(list.CourseIDs)
	return &list, nil
}

func (f fakeCourseLists) Create(_ context.Context, list *entity.CourseList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lists[list.LearnerID]; ok {
		return errDuplicate
	}
	stored := *list
	stored.CourseIDs = cloneIDs(list.CourseIDs)
	f.lists[list.LearnerID] = stored
	return nil
}

func (f fakeCourseLists) Update(_ context.Context, list *entity.CourseList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lists[list.LearnerID]; !ok {
		return errors.New("list not stored")
	}
	stored := *list
	stored.CourseIDs = cloneIDs(list.CourseIDs)
	f.lists[list.LearnerID] = stored
	return nil
}

type fakeSubscriptions struct{ *fakeCatalog }

func (f fakeSubscriptions) Create(_ context.Context, subscription *entity.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscriptions = append(f.subscriptions, *subscription)
	return nil
}

func (f fakeSubscriptions) FindByLearnerAndCourse(_ context.Context, learnerID, courseID string) (*entity.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, subscription := range f.subscriptions {
		if subscription.LearnerID == learnerID && subscription.CourseID == courseID {
			s := subscription
			return &s, nil
		}
	}
	return nil, nil
}

type fakeReviews struct{ *fakeCatalog }

func (f fakeReviews) Create(_ context.Context, review *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f fakeReviews) FindByCourse(_ context.Context, courseID string) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reviews := make([]*entity.Review, 0)
	for _, review := range f.reviews {
		if review.CourseID == courseID {
			r := review
			reviews = append(reviews, &r)
		}
	}
	return reviews, nil
}
