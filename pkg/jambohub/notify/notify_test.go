package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role, unit string, optedIn, active bool) models.User {
	t.Helper()
	user := models.User{
		Name:               email,
		Email:              email,
		PasswordHash:       "x",
		Role:               role,
		Unit:               unit,
		Active:             active,
		EmailNotifications: optedIn,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

type fakeMailer struct {
	sent []Recipient
}

func (m *fakeMailer) Send(to Recipient, subject, body string) error {
	m.sent = append(m.sent, to)
	return nil
}

func TestShouldNotifyFlags(t *testing.T) {
	cases := []struct {
		email, push bool
		kind        Kind
		want        bool
	}{
		{true, false, KindEmail, true},
		{true, false, KindPush, false},
		{false, true, KindEmail, false},
		{false, true, KindPush, true},
		{false, false, KindEmail, false},
		{true, true, KindPush, true},
	}
	for _, tc := range cases {
		ch := &models.Channel{EmailNotifications: tc.email, PushNotifications: tc.push}
		require.Equal(t, tc.want, ShouldNotify(ch, tc.kind),
			"email=%v push=%v kind=%s", tc.email, tc.push, tc.kind)
	}
	require.False(t, ShouldNotify(nil, KindEmail))
	require.False(t, ShouldNotify(&models.Channel{EmailNotifications: true}, Kind("sms")))
}

func TestRecipientsFiltering(t *testing.T) {
	db := setupDB(t)
	d := NewDispatcher(db, nil)

	sender := createUser(t, db, "sender@example.org", models.RoleAdultLeader, "", true, true)
	eligible := createUser(t, db, "parent@example.org", models.RoleParent, "", true, true)
	createUser(t, db, "optedout@example.org", models.RoleParent, "", false, true)
	createUser(t, db, "inactive@example.org", models.RoleParent, "", true, false)
	createUser(t, db, "scout@example.org", models.RoleYouth, "", true, true)

	channel := &models.Channel{
		Name:         "Family Updates",
		Type:         models.ChannelTypeParent,
		AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader, models.RoleParent),
	}

	recipients, err := d.Recipients(channel, &sender)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	require.Equal(t, eligible.Email, recipients[0].Email)
}

func TestRecipientsExcludesSender(t *testing.T) {
	db := setupDB(t)
	d := NewDispatcher(db, nil)

	sender := createUser(t, db, "sender@example.org", models.RoleAdultLeader, "", true, true)
	channel := &models.Channel{
		Name:         "Adult Leadership",
		AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader),
	}

	recipients, err := d.Recipients(channel, &sender)
	require.NoError(t, err)
	require.Empty(t, recipients)
}

func TestRecipientsUnitChannelScopedToUnit(t *testing.T) {
	db := setupDB(t)
	d := NewDispatcher(db, nil)

	sender := createUser(t, db, "leader@example.org", models.RoleAdultLeader, "Troop 42", true, true)
	insider := createUser(t, db, "scout42@example.org", models.RoleYouth, "Troop 42", true, true)
	createUser(t, db, "scout7@example.org", models.RoleYouth, "Troop 7", true, true)

	channel := &models.Channel{
		Name:         "Troop 42",
		Type:         models.ChannelTypeUnit,
		Unit:         "Troop 42",
		AllowedRoles: models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader, models.RoleYouth, models.RoleParent),
	}

	recipients, err := d.Recipients(channel, &sender)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	require.Equal(t, insider.Email, recipients[0].Email)
}

func TestRecipientsEmptyAllowedRoles(t *testing.T) {
	db := setupDB(t)
	d := NewDispatcher(db, nil)

	sender := createUser(t, db, "sender@example.org", models.RoleAdmin, "", true, true)
	createUser(t, db, "parent@example.org", models.RoleParent, "", true, true)

	channel := &models.Channel{Name: "Dormant", AllowedRoles: models.RoleList("")}

	recipients, err := d.Recipients(channel, &sender)
	require.NoError(t, err)
	require.Empty(t, recipients)
}

func TestDispatchHonorsChannelEmailFlag(t *testing.T) {
	db := setupDB(t)
	mailer := &fakeMailer{}
	d := NewDispatcher(db, mailer)

	sender := createUser(t, db, "sender@example.org", models.RoleAdultLeader, "", true, true)
	createUser(t, db, "parent@example.org", models.RoleParent, "", true, true)

	channel := &models.Channel{
		Name:               "Quiet Channel",
		AllowedRoles:       models.NewRoleList(models.RoleAdmin, models.RoleAdultLeader, models.RoleParent),
		EmailNotifications: false,
	}
	msg := &models.Message{Content: "no email expected"}

	d.DispatchMessage(channel, &sender, msg)
	require.Empty(t, mailer.sent)

	channel.EmailNotifications = true
	d.DispatchMessage(channel, &sender, msg)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "parent@example.org", mailer.sent[0].Email)
}

func TestMessageBodyPreview(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "0123456789"
	}
	body := messageBody("Announcements", "Jane", &models.Message{Content: long})
	require.Contains(t, body, "Jane posted in Announcements")
	require.Contains(t, body, "...")
	require.NotContains(t, body, long)

	body = messageBody("Announcements", "Jane", &models.Message{ImageURL: "https://example.org/p.jpg"})
	require.Contains(t, body, "[image]")
}
