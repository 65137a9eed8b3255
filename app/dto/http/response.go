package http

import (
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/dto"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

// Envelope is the body of every response. Data is set on success, Errors on failure.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Failure(message string, errs interface{}) Envelope {
	return Envelope{Success: false, Message: message, Errors: errs}
}

type ProfileView struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountView is the sanitized account: no password hash, tokens, expiries or counters.
type AccountView struct {
	ID         string       `json:"id"`
	Email      string       `json:"email"`
	Role       string       `json:"role"`
	IsVerified bool         `json:"isVerified"`
	CreatedAt  time.Time    `json:"createdAt"`
	Profile    *ProfileView `json:"profile,omitempty"`
}

type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	Account   AccountView `json:"account"`
}

type SignupResponse struct {
	Account               AccountView `json:"account"`
	VerificationEmailSent bool        `json:"verificationEmailSent"`
}

type ProfileListResponse struct {
	Total    int           `json:"total"`
	Profiles []ProfileView `json:"profiles"`
}

type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CourseView struct {
	ID           string    `json:"id"`
	InstructorID string    `json:"instructorReference"`
	CategoryID   string    `json:"category"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Language     string    `json:"language"`
	IsApproved   bool      `json:"isApproved"`
	Thumbnail    *string   `json:"thumbnail,omitempty"`
	PromoVideo   *string   `json:"promoVideo,omitempty"`
	SectionIDs   []string  `json:"sections"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SectionView struct {
	ID         string   `json:"id"`
	CourseID   string   `json:"courseReference"`
	Title      string   `json:"title"`
	LectureIDs []string `json:"lectures"`
}

type LectureView struct {
	ID          string  `json:"id"`
	SectionID   string  `json:"sectionReference"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"videoUrl,omitempty"`
	ReadingURL  *string `json:"readingUrl,omitempty"`
}

type QuizView struct {
	ID         string `json:"id"`
	SectionID  string `json:"sectionReference"`
	Title      string `json:"title"`
	TotalMarks int    `json:"totalMarks"`
	PassMarks  int    `json:"passMarks"`
}

type QuizQuestionView struct {
	ID       string   `json:"id"`
	QuizID   string   `json:"quizReference"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Marks    int      `json:"marks"`
}

type AssignmentView struct {
	ID          string  `json:"id"`
	SectionID   string  `json:"sectionReference"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TotalMarks  int     `json:"totalMarks"`
	PassMarks   int     `json:"passMarks"`
	FileURL     *string `json:"fileUrl,omitempty"`
}

type CourseListView struct {
	ID        string   `json:"id"`
	LearnerID string   `json:"learnerReference"`
	CourseIDs []string `json:"courses"`
}

type SubscriptionView struct {
	ID         string `json:"id"`
	LearnerID  string `json:"learnerReference"`
	CourseID   string `json:"courseReference"`
	IsApproved bool   `json:"isApproved"`
}

type ReviewView struct {
	ID        string  `json:"id"`
	CourseID  string  `json:"courseReference"`
	LearnerID string  `json:"learnerReference"`
	Rating    int     `json:"rating"`
	Review    *string `json:"review,omitempty"`
}

func nullable(valid bool, value string) *string {
	if !valid {
		return nil
	}
	return &value
}

func NewProfileView(profile *entity.Profile) *ProfileView {
	if profile == nil {
		return nil
	}
	return &ProfileView{
		ID:        profile.ID,
		Kind:      profile.Kind.String(),
		Name:      profile.Name,
		Email:     profile.Email,
		Image:     nullable(profile.Image.Valid, profile.Image.String),
		CreatedAt: profile.CreatedAt,
	}
}

func NewAccountView(account *entity.Account, profile *entity.Profile) AccountView {
	return AccountView{
		ID:         account.ID,
		Email:      account.Email,
		Role:       string(account.Role),
		IsVerified: account.IsVerified,
		CreatedAt:  account.CreatedAt,
		Profile:    NewProfileView(profile),
	}
}

func NewSessionResponse(result *dto.SessionResult) SessionResponse {
	return SessionResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Account:   NewAccountView(result.Account, result.Profile),
	}
}

func NewSignupResponse(result *dto.SignupResult) SignupResponse {
	return SignupResponse{
		Account:               NewAccountView(result.Account, result.Profile),
		VerificationEmailSent: result.VerificationEmailSent,
	}
}

func NewProfileListResponse(list *dto.ProfileList) ProfileListResponse {
	views := make([]ProfileView, 0, len(list.Profiles))
	for _, profile := range list.Profiles {
		views = append(views, *NewProfileView(profile))
	}
	return ProfileListResponse{Total: list.Total, Profiles: views}
}

func NewCategoryView(category *entity.Category) CategoryView {
	return CategoryView{ID: category.ID, Name: category.Name}
}

func NewCategoryViews(categories []*entity.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, NewCategoryView(category))
	}
	return views
}

func NewCourseView(course *entity.Course) CourseView {
	return CourseView{
		ID:           course.ID,
		InstructorID: course.InstructorID,
		CategoryID:   course.CategoryID,
		Title:        course.Title,
		Description:  course.Description,
		Language:     course.Language,
		IsApproved:   course.IsApproved,
		Thumbnail:    nullable(course.Thumbnail.Valid, course.Thumbnail.String),
		PromoVideo:   nullable(course.PromoVideo.Valid, course.PromoVideo.String),
		SectionIDs:   course.SectionIDs,
		CreatedAt:    course.CreatedAt,
	}
}

func NewCourseViews(courses []*entity.Course) []CourseView {
	views := make([]CourseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, NewCourseView(course))
	}
	return views
}

func NewSectionView(section *entity.Section) SectionView {
	return SectionView{
		ID:         section.ID,
		CourseID:   section.CourseID,
		Title:      section.Title,
		LectureIDs: section.LectureIDs,
	}
}

func NewSectionViews(sections []*entity.Section) []SectionView {
	views := make([]SectionView, 0, len(sections))
	for _, section := range sections {
		views = append(views, NewSectionView(section))
	}
	return views
}

func NewLectureView(lecture *entity.Lecture) LectureView {
	return LectureView{
		ID:          lecture.ID,
		SectionID:   lecture.SectionID,
		Title:       lecture.Title,
		Description: nullable(lecture.Description.Valid, lecture.Description.String),
		VideoURL:    nullable(lecture.VideoURL.Valid, lecture.VideoURL.String),
		ReadingURL:  nullable(lecture.ReadingURL.Valid, lecture.ReadingURL.String),
	}
}

func NewQuizView(quiz *entity.Quiz) QuizView {
	return QuizView{
		ID:         quiz.ID,
		SectionID:  quiz.SectionID,
		Title:      quiz.Title,
		TotalMarks: quiz.TotalMarks,
		PassMarks:  quiz.PassMarks,
	}
}

func NewQuizQuestionView(question *entity.QuizQuestion) QuizQuestionView {
	return QuizQuestionView{
		ID:       question.ID,
		QuizID:   question.QuizID,
		Question: question.Question,
		Options:  question.Options,
		Answer:   question.Answer,
		Marks:    question.Marks,
	}
}

func NewAssignmentView(assignment *entity.Assignment) AssignmentView {
	return AssignmentView{
		ID:          assignment.ID,
		SectionID:   assignment.SectionID,
		Title:       assignment.Title,
		Description: assignment.Description,
		TotalMarks:  assignment.TotalMarks,
		PassMarks:   assignment.PassMarks,
		FileURL:     nullable(assignment.FileURL.Valid, assignment.FileURL.String),
	}
}

func NewCourseListView(list *entity.CourseList) CourseListView {
	return CourseListView{ID: list.ID, LearnerID: list.LearnerID, CourseIDs: list.CourseIDs}
}

func NewSubscriptionView(subscription *entity.Subscription) SubscriptionView {
	return SubscriptionView{
		ID:         subscription.ID,
		LearnerID:  subscription.LearnerID,
		CourseID:   subscription.CourseID,
		IsApproved: subscription.IsApproved,
	}
}

func NewReviewView(review *entity.Review) ReviewView {
	return ReviewView{
		ID:        review.ID,
		CourseID:  review.CourseID,
		LearnerID: review.LearnerID,
		Rating:    review.Rating,
		Review:    nullable(review.Review.Valid, review.Review.String),
	}
}

func NewReviewViews(reviews []*entity.Review) []ReviewView {
	views := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, NewReviewView(review))
	}
	return views
}
