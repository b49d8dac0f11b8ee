package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// ApplicationSnapshot freezes the applicant's active profile document ids
// at submission time. It is created exactly once per application and never
// updated; the receiving institution keeps access to the listed documents
// regardless of what happens to the live profile afterwards.
type ApplicationSnapshot struct {
	BaseModel
	ApplicationID string         `gorm:"not null;uniqueIndex"`
	DocumentIDs   datatypes.JSON `gorm:"type:jsonb"`
}

func (s *ApplicationSnapshot) SetDocumentIDs(ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.DocumentIDs = datatypes.JSON(raw)
	return nil
}

func (s *ApplicationSnapshot) DocumentIDList() ([]string, error) {
	if len(s.DocumentIDs) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(s.DocumentIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ContainsDocument reports whether the snapshot references the document.
func (s *ApplicationSnapshot) ContainsDocument(documentID string) bool {
	ids, err := s.DocumentIDList()
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == documentID {
			return true
		}
	}
	return false
}
