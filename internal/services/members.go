package services

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"discovery-space/internal/db"

	"gorm.io/gorm"
)

const minSearchLength = 2

// MemberSummary is a member with their visit history condensed. LastVisit is
// zero when the member has no visits.
type MemberSummary struct {
	Member    db.Member
	Visits    int64
	LastVisit time.Time
}

type MemberService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMemberService(conn *gorm.DB) *MemberService {
	return &MemberService{db: conn, now: time.Now}
}

// WithClock returns a copy of the service that reads the time from now.
func (s *MemberService) WithClock(now func() time.Time) *MemberService {
	return &MemberService{db: s.db, now: now}
}

// CheckIn records a visit for the member holding card. An unknown card
// returns false and writes nothing. Card numbers are not unique; the
// lowest-id member wins.
func (s *MemberService) CheckIn(ctx context.Context, card string) (*db.Member, bool, error) {
	card = strings.TrimSpace(card)
	if card == "" {
		return nil, false, nil
	}
	tx := s.db.WithContext(ctx)
	var member db.Member
	if err := tx.Where("card_number = ?", card).Order("id asc").First(&member).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	visit := db.MemberVisit{MemberID: member.ID, Date: s.now()}
	if err := tx.Create(&visit).Error; err != nil {
		return nil, false, err
	}
	log.Printf("member visit recorded member_id=%d visit_id=%d", member.ID, visit.ID)
	return &member, true, nil
}

func validateMemberFields(first, last, card string) error {
	switch {
	case first == "":
		return invalid("You must enter a valid first name.")
	case last == "":
		return invalid("You must enter a valid last name.")
	case card == "":
		return invalid("You must scan a valid membership card.")
	case tooLong(first, maxMemberFieldLength):
		return invalid(tooLongMessage("First name", maxMemberFieldLength))
	case tooLong(last, maxMemberFieldLength):
		return invalid(tooLongMessage("Last name", maxMemberFieldLength))
	case tooLong(card, maxMemberFieldLength):
		return invalid(tooLongMessage("Card number", maxMemberFieldLength))
	}
	return nil
}

// Enroll creates a member and records their first visit.
func (s *MemberService) Enroll(ctx context.Context, first, last, card string) (db.Member, error) {
	first, last, card = strings.TrimSpace(first), strings.TrimSpace(last), strings.TrimSpace(card)
	if err := validateMemberFields(first, last, card); err != nil {
		return db.Member{}, err
	}
	member := db.Member{FirstName: first, LastName: last, CardNumber: card}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return tx.Create(&db.MemberVisit{MemberID: member.ID, Date: s.now()}).Error
	})
	if err != nil {
		return db.Member{}, err
	}
	log.Printf("member enrolled member_id=%d", member.ID)
	return member, nil
}

func (s *MemberService) GetMember(ctx context.Context, id uint) (db.Member, error) {
	var member db.Member
	if err := s.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if db.IsNotFound(err) {
			return db.Member{}, ErrNotFound
		}
		return db.Member{}, err
	}
	return member, nil
}

// UpdateMember overwrites all three member fields once they validate.
func (s *MemberService) UpdateMember(ctx context.Context, id uint, first, last, card string) (db.Member, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return db.Member{}, err
	}
	first, last, card = strings.TrimSpace(first), strings.TrimSpace(last), strings.TrimSpace(card)
	if err := validateMemberFields(first, last, card); err != nil {
		return db.Member{}, err
	}
	if err := s.db.WithContext(ctx).Model(&db.Member{ID: member.ID}).Updates(map[string]any{
		"first_name":  first,
		"last_name":   last,
		"card_number": card,
	}).Error; err != nil {
		return db.Member{}, err
	}
	member.FirstName, member.LastName, member.CardNumber = first, last, card
	return member, nil
}

// DeleteMember removes a member's visits and then the member.
func (s *MemberService) DeleteMember(ctx context.Context, id uint) (db.Member, error) {
	var member db.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, id).Error; err != nil {
			if db.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&db.MemberVisit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Member{}, id).Error
	})
	if err != nil {
		return db.Member{}, err
	}
	log.Printf("member deleted member_id=%d", id)
	return member, nil
}

func (s *MemberService) MemberInfo(ctx context.Context, id uint) (MemberSummary, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return MemberSummary{}, err
	}
	return s.summarize(s.db.WithContext(ctx), member)
}

// Search matches query case-insensitively against last names. Queries shorter
// than two characters are rejected before any lookup.
func (s *MemberService) Search(ctx context.Context, query string) ([]MemberSummary, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return nil, &ValidationError{
			Messages: []string{"Search query must be at least two characters."},
			Err:      ErrQueryTooShort,
		}
	}
	tx := s.db.WithContext(ctx)
	var members []db.Member
	err := tx.Where("LOWER(last_name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("last_name asc, first_name asc, id asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	results := make([]MemberSummary, 0, len(members))
	for _, member := range members {
		summary, err := s.summarize(tx, member)
		if err != nil {
			return nil, err
		}
		results = append(results, summary)
	}
	return results, nil
}

func (s *MemberService) summarize(tx *gorm.DB, member db.Member) (MemberSummary, error) {
	summary := MemberSummary{Member: member}
	if err := tx.Model(&db.MemberVisit{}).Where("member_id = ?", member.ID).Count(&summary.Visits).Error; err != nil {
		return MemberSummary{}, err
	}
	if summary.Visits == 0 {
		return summary, nil
	}
	var last db.MemberVisit
	if err := tx.Where("member_id = ?", member.ID).Order("date desc, id desc").First(&last).Error; err != nil {
		return MemberSummary{}, err
	}
	summary.LastVisit = last.Date
	return summary, nil
}
