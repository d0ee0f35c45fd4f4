package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Verification states shared by requests and the mirror view.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
	VerificationNone     = "unverified"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Role         string `json:"role" db:"role" validate:"required,oneof=admin mentor student"`
	Status       string `json:"status" db:"status" validate:"omitempty,oneof=active pending inactive"`
	UpdatedAt    string `json:"updated_at" db:"updated_at"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type Assignment struct {
	ID           int64  `json:"id" db:"id"`
	MentorID     int64  `json:"mentor_id" db:"mentor_id"`
	StudentID    int64  `json:"student_id" db:"student_id"`
	AssignedDate string `json:"assigned_date" db:"assigned_date"`
	Notes        string `json:"notes,omitempty" db:"notes"`
}

type VerificationRequest struct {
	ID              string `json:"id" db:"id"`
	StudentEmail    string `json:"student_email" db:"student_email" validate:"required,email"`
	Document        string `json:"document" db:"document"`
	SubmittedAt     string `json:"submitted_at" db:"submitted_at"`
	Status          string `json:"status" db:"status"`
	RejectionReason string `json:"rejection_reason,omitempty" db:"rejection_reason"`
}

type Profile struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"user_id" db:"user_id"`
	Bio       string `json:"bio,omitempty" db:"bio"`
	Skills    string `json:"skills,omitempty" db:"skills"`
	UpdatedAt string `json:"updated_at" db:"updated_at"`
}

type Qualification struct {
	ID                 int64  `json:"id" db:"id"`
	UserID             int64  `json:"user_id" db:"user_id"`
	Title              string `json:"title" db:"title" validate:"required"`
	Issuer             string `json:"issuer,omitempty" db:"issuer"`
	Year               int    `json:"year,omitempty" db:"year"`
	VerificationStatus string `json:"verification_status" db:"verification_status"`
}

type StudentActivity struct {
	ID                 int64  `json:"id" db:"id"`
	UserID             int64  `json:"user_id" db:"user_id"`
	Activity           string `json:"activity" db:"activity" validate:"required"`
	VerificationStatus string `json:"verification_status" db:"verification_status"`
	CreatedAt          string `json:"created_at" db:"created_at"`
}

type Message struct {
	ID          string `json:"id" db:"id"`
	SenderID    int64  `json:"sender_id" db:"sender_id"`
	RecipientID int64  `json:"recipient_id" db:"recipient_id"`
	Subject     string `json:"subject,omitempty" db:"subject"`
	Body        string `json:"body" db:"body" validate:"required"`
	Read        bool   `json:"read" db:"read_flag"`
	CreatedAt   string `json:"created_at" db:"created_at"`
}

type JobPost struct {
	ID        int64  `json:"id" db:"id"`
	Company   string `json:"company" db:"company"`
	Title     string `json:"title" db:"title" validate:"required"`
	Skills    string `json:"skills" db:"skills"`
	CreatedAt string `json:"created_at" db:"created_at"`
}
