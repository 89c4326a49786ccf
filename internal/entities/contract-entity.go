package entities

import "github.com/aarondl/null/v8"

type Contract struct {
	ID         uint64      `json:"id"`
	Number     string      `json:"number"`
	SignedDate string      `json:"signed_date"`
	File       null.String `json:"file"`
	AuthorID   uint64      `json:"author_id"`
	AuthorName string      `json:"author_name"`
}

// EditableBy — проверка владения для отрисовки кнопок. Не граница безопасности:
// бэкенд перепроверяет владельца на каждом изменении.
func (c *Contract) EditableBy(userID uint64) bool {
	return c.AuthorID == userID
}
