package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentTypePDF     ContentType = "pdf"
	ContentTypeVideo   ContentType = "video"
	ContentTypeYouTube ContentType = "youtube"
	ContentTypeLink    ContentType = "link"
	ContentTypeText    ContentType = "text"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePDF, ContentTypeVideo, ContentTypeYouTube, ContentTypeLink, ContentTypeText:
		return true
	}
	return false
}

// Content is a single training material. Exactly one payload field is
// relevant per content type: file for pdf/video, url for youtube/link,
// text_content for text.
type Content struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	TrainingID  uuid.UUID   `gorm:"type:uuid;not null" json:"training_id"`
	Training    *Training   `gorm:"foreignKey:TrainingID;constraint:OnDelete:CASCADE;" json:"-"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	ContentType ContentType `gorm:"type:varchar(20);not null" json:"content_type"`

	// pdf, video
	FilePath string `gorm:"type:text" json:"file_path,omitempty"`
	FileName string `gorm:"size:255" json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`

	// youtube, link
	URL string `gorm:"size:500" json:"url,omitempty"`

	// text
	TextContent string `gorm:"type:text" json:"text_content,omitempty"`

	Order    int  `gorm:"column:display_order;not null;default:0" json:"order"`
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Validate checks that the payload field matching the content type is set.
func (c *Content) Validate() error {
	if !c.ContentType.Valid() {
		return fmt.Errorf("invalid content type: %s", c.ContentType)
	}
	switch c.ContentType {
	case ContentTypePDF, ContentTypeVideo:
		if c.FilePath == "" {
			return fmt.Errorf("File is required for %s content type", c.ContentType)
		}
	case ContentTypeYouTube, ContentTypeLink:
		if c.URL == "" {
			return fmt.Errorf("URL is required for %s content type", c.ContentType)
		}
	case ContentTypeText:
		if c.TextContent == "" {
			return errors.New("Text content is required for text content type")
		}
	}
	return nil
}
