package testing

import (
	"fmt"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password used for all fixture users
const TestPassword = "Password123!"

// CreateTestUser inserts a regular active user
func CreateTestUser(db *gorm.DB, email string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash test password: %w", err)
	}

	user := &models.User{
		UUID:         uuid.New(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: string(hash),
		IsStaff:      utils.ToPtr(false),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user %s: %w", email, err)
	}
	return user, nil
}

// CreateTestStaffUser inserts an active staff user
func CreateTestStaffUser(db *gorm.DB, email string) (*models.User, error) {
	user, err := CreateTestUser(db, email)
	if err != nil {
		return nil, err
	}
	if err := db.Model(user).Update("is_staff", true).Error; err != nil {
		return nil, fmt.Errorf("failed to promote test user %s: %w", email, err)
	}
	user.IsStaff = utils.ToPtr(true)
	return user, nil
}

// CreateTestGroup inserts a group carrying the given permission codenames
func CreateTestGroup(db *gorm.DB, name string, codenames ...string) (*models.Group, error) {
	group := &models.Group{Name: name}
	for _, codename := range codenames {
		group.Permissions = append(group.Permissions, models.Permission{
			Codename: codename,
			Name:     codename,
		})
	}
	if err := db.Create(group).Error; err != nil {
		return nil, fmt.Errorf("failed to create test group %s: %w", name, err)
	}
	return group, nil
}

// AddUserToGroup links a user to a group
func AddUserToGroup(db *gorm.DB, group *models.Group, user *models.User) error {
	if err := db.Exec("INSERT INTO user_groups (user_id, group_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		user.ID, group.ID).Error; err != nil {
		return fmt.Errorf("failed to add user %d to group %d: %w", user.ID, group.ID, err)
	}
	return nil
}

// CreateTestClient inserts a client owned by the given user
func CreateTestClient(db *gorm.DB, owner *models.User, email string) (*models.Client, error) {
	client := &models.Client{
		UserID:    owner.ID,
		FirstName: "Client",
		LastName:  utils.ToPtr("Fixture"),
		Email:     email,
	}
	if err := db.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create test client %s: %w", email, err)
	}
	return client, nil
}

// CreateTestMessage inserts a message owned by the given user; client may be nil
func CreateTestMessage(db *gorm.DB, owner *models.User, client *models.Client) (*models.Message, error) {
	message := &models.Message{
		UserID:  owner.ID,
		Subject: "Test subject",
		Body:    "Test body",
	}
	if client != nil {
		message.ClientID = &client.ID
	}
	if err := db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to create test message: %w", err)
	}
	return message, nil
}

// CreateTestMailing inserts a mailing owned by the given user; message may be
// nil, recipients are linked through the join table
func CreateTestMailing(db *gorm.DB, owner *models.User, message *models.Message, recipients ...*models.Client) (*models.Mailing, error) {
	mailing := &models.Mailing{
		UserID: owner.ID,
	}
	if message != nil {
		mailing.MessageID = &message.ID
	}
	for _, r := range recipients {
		mailing.Recipients = append(mailing.Recipients, *r)
	}
	if err := db.Create(mailing).Error; err != nil {
		return nil, fmt.Errorf("failed to create test mailing: %w", err)
	}
	return mailing, nil
}

// CreateTestDeliveryLog inserts a delivery log row for the given mailing
func CreateTestDeliveryLog(db *gorm.DB, owner *models.User, mailing *models.Mailing, status models.DeliveryStatus) (*models.DeliveryLog, error) {
	now := utils.UTCNow()
	entry := &models.DeliveryLog{
		UserID:    owner.ID,
		MailingID: &mailing.ID,
		SentAt:    &now,
		Status:    status,
	}
	if err := db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create test delivery log: %w", err)
	}
	return entry, nil
}

// CreateTestBlogPost inserts a blog post
func CreateTestBlogPost(db *gorm.DB, title string) (*models.BlogPost, error) {
	post := &models.BlogPost{
		Title: title,
		Body:  "Post body",
	}
	if err := db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create test blog post %s: %w", title, err)
	}
	return post, nil
}
