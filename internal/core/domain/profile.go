package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInvalidAttribute  = errors.New("invalid attribute (must be strength, intellect, charisma or wealth)")
	ErrNegativeDeposit   = errors.New("xp deposit cannot be negative")
	ErrUsernameEmpty     = errors.New("username cannot be empty")
	ErrProfileInvalidID  = errors.New("invalid profile id")
)

type Attribute string

const (
	AttributeStrength  Attribute = "strength"
	AttributeIntellect Attribute = "intellect"
	AttributeCharisma  Attribute = "charisma"
	AttributeWealth    Attribute = "wealth"
)

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeStrength, AttributeIntellect, AttributeCharisma, AttributeWealth:
		return true
	default:
		return false
	}
}

const (
	BaseXPToNextLevel = 100
	// LevelCurveFactor scales the threshold per level: floor(level * 100 * 1.5).
	LevelCurveFactor = 1.5
)

// Profile is the progression ledger for a single user: level, pending XP and
// the four attribute totals. All writes go through DepositXP / AddAttributePoints.
type Profile struct {
	ID        string  `json:"id" db:"id"`
	Username  string  `json:"username" db:"username"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"avatar_url"`

	Level         int `json:"level" db:"level"`
	CurrentXP     int `json:"current_xp" db:"current_xp"`
	XPToNextLevel int `json:"xp_to_next_level" db:"xp_to_next_level"`

	Strength  int `json:"strength" db:"strength"`
	Intellect int `json:"intellect" db:"intellect"`
	Charisma  int `json:"charisma" db:"charisma"`
	Wealth    int `json:"wealth" db:"wealth"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewProfile(userID, username string) (*Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrProfileInvalidID
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	now := time.Now().UTC()

	return &Profile{
		ID:            userID,
		Username:      username,
		Level:         1,
		CurrentXP:     0,
		XPToNextLevel: BaseXPToNextLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// xpThresholdForLevel is the XP required to move past the given level.
func xpThresholdForLevel(level int) int {
	return int(float64(level*BaseXPToNextLevel) * LevelCurveFactor)
}

// DepositXP adds amount to the pending XP and consumes every threshold it
// crosses, one level at a time. After it returns, 0 <= CurrentXP < XPToNextLevel.
func (p *Profile) DepositXP(amount int) error {
	if amount < 0 {
		return ErrNegativeDeposit
	}

	p.CurrentXP += amount
	for p.CurrentXP >= p.XPToNextLevel {
		p.CurrentXP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = xpThresholdForLevel(p.Level)
	}

	p.UpdatedAt = time.Now().UTC()
	return nil
}

// AddAttributePoints credits an attribute total. The amount is the already
// scaled bonus, not the global XP amount; the two are deposited separately.
func (p *Profile) AddAttributePoints(attr Attribute, amount int) error {
	if amount < 0 {
		return ErrNegativeDeposit
	}

	switch attr {
	case AttributeStrength:
		p.Strength += amount
	case AttributeIntellect:
		p.Intellect += amount
	case AttributeCharisma:
		p.Charisma += amount
	case AttributeWealth:
		p.Wealth += amount
	default:
		return ErrInvalidAttribute
	}

	p.UpdatedAt = time.Now().UTC()
	return nil
}

// AttributeTotal returns the current total for one attribute.
func (p *Profile) AttributeTotal(attr Attribute) int {
	switch attr {
	case AttributeStrength:
		return p.Strength
	case AttributeIntellect:
		return p.Intellect
	case AttributeCharisma:
		return p.Charisma
	case AttributeWealth:
		return p.Wealth
	default:
		return 0
	}
}
