package dto

// FileUpload — бинарный файл во вложении. Его присутствие в payload'е
// переключает кодирование запроса на multipart (см. internal/api).
type FileUpload struct {
	Name    string `json:"-"`
	Content []byte `json:"-"`
}

type CreateContractDTO struct {
	Number     string      `json:"number" validate:"required"`
	SignedDate string      `json:"signed_date" validate:"required"`
	File       *FileUpload `json:"-" form:"file"`
}

type UpdateContractDTO struct {
	Number     *string     `json:"number,omitempty"      validate:"omitempty"`
	SignedDate *string     `json:"signed_date,omitempty" validate:"omitempty"`
	File       *FileUpload `json:"-" form:"file"`
}
