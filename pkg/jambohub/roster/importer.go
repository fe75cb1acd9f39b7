package roster

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/vahc/jambohub/pkg/jambohub/auth"
	"github.com/vahc/jambohub/pkg/jambohub/models"
	"gorm.io/gorm"
)

// importColumns is the fixed column layout of a roster import file.
const importColumns = 13

// Column order: username, first name, last name, email, role, position,
// unit, patrol, phone, age, gender, emergency contact name, emergency
// contact phone.
const (
	colUsername = iota
	colFirstName
	colLastName
	colEmail
	colRole
	colPosition
	colUnit
	colPatrol
	colPhone
	colAge
	colGender
	colEmergencyName
	colEmergencyPhone
)

// ImportResult represents the outcome of a bulk roster import
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Importer creates roster users from delimited text
type Importer struct {
	db              *gorm.DB
	defaultPassword string
}

// NewImporter creates a new Importer. Imported accounts get the
// default password until the user changes it.
func NewImporter(db *gorm.DB, defaultPassword string) *Importer {
	return &Importer{db: db, defaultPassword: defaultPassword}
}

// Import parses comma- or tab-separated roster data and creates one
// user per row. A bad row is recorded and skipped; rows already
// created stay created (partial success, no batch rollback).
func (im *Importer) Import(data string) (*ImportResult, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing import data: %w", err)
	}

	hash, err := auth.HashPassword(im.defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing default password: %w", err)
	}

	result := &ImportResult{Errors: []string{}}
	for i, record := range records {
		row := i + 1
		if i == 0 && isHeaderRow(record) {
			continue
		}

		user, rowErr := im.userFromRecord(record)
		if rowErr != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, rowErr))
			continue
		}

		user.PasswordHash = hash
		if err := im.db.Create(user).Error; err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: failed to create user: %v", row, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (im *Importer) userFromRecord(record []string) (*models.User, error) {
	if len(record) != importColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", importColumns, len(record))
	}

	get := func(i int) string { return strings.TrimSpace(record[i]) }

	email := strings.ToLower(get(colEmail))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	name := strings.TrimSpace(get(colFirstName) + " " + get(colLastName))
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	role, ok := parseImportRole(get(colRole))
	if !ok {
		return nil, fmt.Errorf("unknown role %q", get(colRole))
	}

	var count int64
	im.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("email %s already exists", email)
	}

	return &models.User{
		Username:              get(colUsername),
		Name:                  name,
		Email:                 email,
		Role:                  role,
		Position:              get(colPosition),
		Unit:                  get(colUnit),
		Patrol:                get(colPatrol),
		Phone:                 get(colPhone),
		Age:                   get(colAge),
		Gender:                get(colGender),
		EmergencyContactName:  get(colEmergencyName),
		EmergencyContactPhone: get(colEmergencyPhone),
		Active:                true,
		EmailNotifications:    true,
	}, nil
}

// parseImportRole accepts the closed role enumeration plus the "adult"
// shorthand that roster spreadsheets use for adult leaders.
func parseImportRole(s string) (models.Role, bool) {
	if s == "adult" {
		return models.RoleAdultLeader, true
	}
	return models.ParseRole(s)
}

// detectDelimiter picks tab when the first line contains one,
// otherwise comma.
func detectDelimiter(data string) rune {
	line := data
	if idx := strings.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if strings.ContainsRune(line, '\t') {
		return '\t'
	}
	return ','
}

func isHeaderRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "username")
}
