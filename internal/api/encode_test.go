package api

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
)

func TestEncodePayloadNil(t *testing.T) {
	reader, contentType, err := encodePayload(nil)
	require.NoError(t, err)
	assert.Nil(t, reader)
	assert.Empty(t, contentType)
}

func TestEncodePayloadWithoutFileIsJSON(t *testing.T) {
	payload := dto.CreateContractDTO{Number: "Д-1", SignedDate: "2026-01-10"}

	reader, contentType, err := encodePayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	raw, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":"Д-1","signed_date":"2026-01-10"}`, string(raw))
}

func TestEncodePayloadWithFileIsMultipart(t *testing.T) {
	payload := dto.CreateContractDTO{
		Number:     "Д-2",
		SignedDate: "2026-01-11",
		File:       &dto.FileUpload{Name: "scan.pdf", Content: []byte("binary")},
	}

	reader, contentType, err := encodePayload(payload)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	fields := map[string]string{}
	var fileName, fileBody string

	mr := multipart.NewReader(reader, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			fileName = part.FileName()
			fileBody = string(data)
			continue
		}
		fields[part.FormName()] = string(data)
	}

	assert.Equal(t, "Д-2", fields["number"])
	assert.Equal(t, "2026-01-11", fields["signed_date"])
	assert.Equal(t, "scan.pdf", fileName)
	assert.Equal(t, "binary", fileBody)
}

// Непримитивные поля в multipart уходят JSON-строками, nil-поля опускаются.
func TestEncodePayloadMultipartStringifiesNonPrimitives(t *testing.T) {
	type payloadWithExtras struct {
		Name       string        `json:"name"`
		Count      int           `json:"count"`
		ContractID null.Uint64   `json:"contract_id"`
		Tags       []string      `json:"tags"`
		File       *dto.FileUpload `json:"-" form:"attachment"`
	}

	payload := payloadWithExtras{
		Name:       "Принтер",
		Count:      2,
		ContractID: null.Uint64From(7),
		Tags:       []string{"этаж-3", "новое"},
		File:       &dto.FileUpload{Name: "qr.png", Content: []byte{1, 2, 3}},
	}

	reader, contentType, err := encodePayload(payload)
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	fields := map[string]string{}
	mr := multipart.NewReader(reader, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			assert.Equal(t, "attachment", part.FormName())
			continue
		}
		fields[part.FormName()] = string(data)
	}

	assert.Equal(t, "Принтер", fields["name"])
	assert.Equal(t, "2", fields["count"])
	assert.Equal(t, "7", fields["contract_id"])
	assert.JSONEq(t, `["этаж-3","новое"]`, fields["tags"])
}

func TestGroupByTypeStableFirstSeenOrder(t *testing.T) {
	printers := entities.EquipmentType{ID: 2, Name: "Принтер"}
	computers := entities.EquipmentType{ID: 1, Name: "Компьютер"}

	items := []entities.Equipment{
		{ID: 10, TypeID: 2, Type: &printers},
		{ID: 11, TypeID: 1, Type: &computers},
		{ID: 12, TypeID: 2, Type: &printers},
		{ID: 13, TypeID: 1, Type: &computers},
		{ID: 14, TypeID: 2, Type: &printers},
	}

	groups := GroupByType(items)
	require.Len(t, groups, 2)

	assert.Equal(t, uint64(2), groups[0].TypeID)
	assert.Equal(t, "Принтер", groups[0].TypeName)
	assert.Equal(t, 3, groups[0].Count)
	assert.Len(t, groups[0].Items, 3)

	assert.Equal(t, uint64(1), groups[1].TypeID)
	assert.Equal(t, 2, groups[1].Count)

	// Повторная группировка того же списка даёт тот же результат.
	again := GroupByType(items)
	assert.Equal(t, groups, again)
}

func TestGroupByTypeEmptyInput(t *testing.T) {
	assert.Empty(t, GroupByType(nil))
}

func TestGroupByTypeMissingTypeObject(t *testing.T) {
	items := []entities.Equipment{{ID: 1, TypeID: 5}}
	groups := GroupByType(items)
	require.Len(t, groups, 1)
	assert.Equal(t, "", groups[0].TypeName)
	assert.Equal(t, 1, groups[0].Count)
}
