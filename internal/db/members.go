package db

import (
	"encoding/csv"
	"os"
	"strings"

	"gorm.io/gorm"
)

type memberRecord struct {
	FirstName  string
	LastName   string
	CardNumber string
}

// LoadMembers reads members from a CSV (first_name,last_name,card_number with a
// header row) and creates the ones that are not already on file.
func LoadMembers(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	records, err := readMembers(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		entry := Member{
			FirstName:  record.FirstName,
			LastName:   record.LastName,
			CardNumber: record.CardNumber,
		}
		var existing int64
		if err := conn.Model(&Member{}).
			Where("first_name = ? AND last_name = ? AND card_number = ?", entry.FirstName, entry.LastName, entry.CardNumber).
			Count(&existing).Error; err != nil {
			return inserted, err
		}
		if existing > 0 {
			continue
		}
		if err := conn.Create(&entry).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func readMembers(path string) ([]memberRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var records []memberRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 3 {
			continue
		}
		first := strings.TrimSpace(row[0])
		last := strings.TrimSpace(row[1])
		card := strings.TrimSpace(row[2])
		if first == "" || last == "" || card == "" {
			continue
		}
		records = append(records, memberRecord{FirstName: first, LastName: last, CardNumber: card})
	}
	return records, nil
}
