package model

import "time"

// Settings is the single admin-editable configuration row: assistant
// behavior plus export/email templates.
type Settings struct {
	ID              int       `json:"id"`
	AIPrompt        string    `json:"aiPrompt"`
	AIModel         string    `json:"aiModel"`
	AITemperature   string    `json:"aiTemperature"`
	EmailTemplate   string    `json:"emailTemplate"`
	EmailRecipients string    `json:"emailRecipients"`
	ExcelTemplate   string    `json:"excelTemplate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SettingsUpdate carries partial settings changes; nil fields are left
// untouched.
type SettingsUpdate struct {
	AIPrompt        *string `json:"aiPrompt,omitempty"`
	AIModel         *string `json:"aiModel,omitempty"`
	AITemperature   *string `json:"aiTemperature,omitempty"`
	EmailTemplate   *string `json:"emailTemplate,omitempty"`
	EmailRecipients *string `json:"emailRecipients,omitempty"`
	ExcelTemplate   *string `json:"excelTemplate,omitempty"`
}
