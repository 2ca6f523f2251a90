package api

import "time"

// Role is the platform-wide account role
type Role string

// Account roles
const (
	RoleReader Role = "READER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

// UserStatus is the account standing
type UserStatus string

// Account statuses
const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusBanned    UserStatus = "BANNED"
)

// AuthorStatus is the review state of an author application
type AuthorStatus string

// Author application statuses
const (
	AuthorStatusPending  AuthorStatus = "PENDING"
	AuthorStatusApproved AuthorStatus = "APPROVED"
	AuthorStatusRejected AuthorStatus = "REJECTED"
)

// BookStatus is the publication state of a book
type BookStatus string

// Book statuses
const (
	BookStatusDraft     BookStatus = "DRAFT"
	BookStatusPending   BookStatus = "PENDING"
	BookStatusApproved  BookStatus = "APPROVED"
	BookStatusRejected  BookStatus = "REJECTED"
	BookStatusPublished BookStatus = "PUBLISHED"
)

// TransactionType distinguishes earnings entries
type TransactionType string

// Transaction types
const (
	TransactionSale       TransactionType = "SALE"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// WithdrawalStatus is the processing state of a payout request
type WithdrawalStatus string

// Withdrawal statuses
const (
	WithdrawalPending   WithdrawalStatus = "PENDING"
	WithdrawalApproved  WithdrawalStatus = "APPROVED"
	WithdrawalRejected  WithdrawalStatus = "REJECTED"
	WithdrawalCompleted WithdrawalStatus = "COMPLETED"
)

// NotificationType categorizes platform notifications
type NotificationType string

// Notification types
const (
	NotificationBookApproved        NotificationType = "BOOK_APPROVED"
	NotificationBookRejected        NotificationType = "BOOK_REJECTED"
	NotificationBookSubmitted       NotificationType = "BOOK_SUBMITTED"
	NotificationAuthorApproved      NotificationType = "AUTHOR_APPROVED"
	NotificationAuthorRejected      NotificationType = "AUTHOR_REJECTED"
	NotificationBookPurchased       NotificationType = "BOOK_PURCHASED"
	NotificationNewSale             NotificationType = "NEW_SALE"
	NotificationNewReview           NotificationType = "NEW_REVIEW"
	NotificationWithdrawalApproved  NotificationType = "WITHDRAWAL_APPROVED"
	NotificationWithdrawalRejected  NotificationType = "WITHDRAWAL_REJECTED"
	NotificationWithdrawalCompleted NotificationType = "WITHDRAWAL_COMPLETED"
	NotificationSystemAnnouncement  NotificationType = "SYSTEM_ANNOUNCEMENT"
	NotificationAccountWarning      NotificationType = "ACCOUNT_WARNING"
)

// User is the authenticated account record
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	AvatarURL     string     `json:"avatarUrl,omitempty"`
	EmailVerified bool       `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FullName returns the display name for an account
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// AuthorProfile is the per-user author application record
type AuthorProfile struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	User      *User        `json:"user,omitempty"`
	PenName   string       `json:"penName"`
	Bio       string       `json:"bio"`
	PhotoURL  string       `json:"photoUrl,omitempty"`
	Website   string       `json:"website,omitempty"`
	Twitter   string       `json:"twitter,omitempty"`
	Facebook  string       `json:"facebook,omitempty"`
	Status    AuthorStatus `json:"status"`
	MTNNumber string       `json:"mtnNumber,omitempty"`
	OMNumber  string       `json:"omNumber,omitempty"`
	Balance   float64      `json:"balance"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Category is a book category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon,omitempty"`
}

// RejectionEntry records one review rejection of a book
type RejectionEntry struct {
	Reason string `json:"reason"`
	Date   string `json:"date"`
}

// Book is an author's book record
type Book struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	CoverURL         string           `json:"coverUrl,omitempty"`
	FileURL          string           `json:"fileUrl,omitempty"`
	FileFormat       string           `json:"fileFormat,omitempty"`
	FileSize         int64            `json:"fileSize,omitempty"`
	PageCount        int              `json:"pageCount,omitempty"`
	Language         string           `json:"language,omitempty"`
	ISBN             string           `json:"isbn,omitempty"`
	Price            float64          `json:"price"`
	Status           BookStatus       `json:"status"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	RejectionHistory []RejectionEntry `json:"rejectionHistory,omitempty"`
	AuthorID         string           `json:"authorId"`
	Categories       []Category       `json:"categories,omitempty"`
	TotalSales       int              `json:"totalSales"`
	TotalRevenue     float64          `json:"totalRevenue"`
	AverageRating    float64          `json:"averageRating"`
	ReviewCount      int              `json:"reviewCount"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Transaction is one earnings ledger entry
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	BookID    string          `json:"bookId,omitempty"`
	Book      *Book           `json:"book,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AuthorStats aggregates an author's sales figures
type AuthorStats struct {
	TotalBooks     int     `json:"totalBooks"`
	TotalSales     int     `json:"totalSales"`
	TotalRevenue   float64 `json:"totalRevenue"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	AverageRating  float64 `json:"averageRating"`
}

// Withdrawal is a payout request record
type Withdrawal struct {
	ID          string           `json:"id"`
	Amount      float64          `json:"amount"`
	Method      string           `json:"method"`
	PhoneNumber string           `json:"phoneNumber"`
	Status      WithdrawalStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// Notification is a platform notification for the current user
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	Data      map[string]any   `json:"data,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
