package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID gera o UUID antes do INSERT quando o chamador não definiu um.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (t *Team) BeforeCreate(*gorm.DB) error        { assignID(&t.ID); return nil }
func (u *User) BeforeCreate(*gorm.DB) error        { assignID(&u.ID); return nil }
func (c *Client) BeforeCreate(*gorm.DB) error      { assignID(&c.ID); return nil }
func (p *Plant) BeforeCreate(*gorm.DB) error       { assignID(&p.ID); return nil }
func (e *Equipment) BeforeCreate(*gorm.DB) error   { assignID(&e.ID); return nil }
func (a *Appointment) BeforeCreate(*gorm.DB) error { assignID(&a.ID); return nil }
