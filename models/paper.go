package models

import "time"

// Paper represents a submitted manuscript. Papers are created by the
// submission workflow; the decision subsystem only reads them.
type Paper struct {
	PaperID             string     `gorm:"primaryKey;column:paper_id" json:"paper_id"`
	Title               string     `gorm:"column:title" json:"title"`
	RequiredReviewCount int        `gorm:"column:required_review_count" json:"required_review_count"`
	CreateAt            time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt            *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt            *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Authors []PaperAuthor `gorm:"foreignKey:PaperID;references:PaperID" json:"authors,omitempty"`
}

// PaperAuthor links an author to a paper, ordered by author_order.
// Author ids are unique within one paper.
type PaperAuthor struct {
	PaperAuthorID uint   `gorm:"primaryKey;column:paper_author_id" json:"paper_author_id"`
	PaperID       string `gorm:"column:paper_id" json:"paper_id"`
	AuthorID      string `gorm:"column:author_id" json:"author_id"`
	Email         string `gorm:"column:email" json:"email"`
	AuthorOrder   int    `gorm:"column:author_order" json:"author_order"`
}

func (Paper) TableName() string {
	return "papers"
}

func (PaperAuthor) TableName() string {
	return "paper_authors"
}

// HasAuthor reports whether the given user id is listed as an author of the paper.
func (p *Paper) HasAuthor(authorID string) bool {
	for _, a := range p.Authors {
		if a.AuthorID == authorID {
			return true
		}
	}
	return false
}
