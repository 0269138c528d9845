package enums

import "fmt"

// AnnouncementType classifies portal-wide announcements.
type AnnouncementType string

const (
	AnnouncementTypeInfo        AnnouncementType = "info"
	AnnouncementTypeWarning     AnnouncementType = "warning"
	AnnouncementTypeMaintenance AnnouncementType = "maintenance"
)

var validAnnouncementTypes = []AnnouncementType{
	AnnouncementTypeInfo,
	AnnouncementTypeWarning,
	AnnouncementTypeMaintenance,
}

func (a AnnouncementType) String() string {
	return string(a)
}

func (a AnnouncementType) IsValid() bool {
	for _, candidate := range validAnnouncementTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

func ParseAnnouncementType(value string) (AnnouncementType, error) {
	for _, candidate := range validAnnouncementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid announcement type %q", value)
}
