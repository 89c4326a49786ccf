package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"

	"inventory-system/internal/dto"
)

// Правило кодирования исходящих запросов (бэкенд на него рассчитывает):
// если среди полей payload'а есть бинарный файл — весь payload уходит как
// multipart/form-data, при этом непримитивные поля JSON-строкуются;
// иначе payload сериализуется обычным JSON. Правило применяется единообразно
// ко всем запросам клиента.
func encodePayload(payload interface{}) (io.Reader, string, error) {
	if payload == nil {
		return nil, "", nil
	}

	files := collectFiles(payload)
	if len(files) == 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("не удалось сериализовать payload: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}

	return encodeMultipart(payload, files)
}

type filePart struct {
	field  string
	upload *dto.FileUpload
}

func collectFiles(payload interface{}) []filePart {
	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var files []filePart
	collectFilesFromStruct(v, &files)
	return files
}

func collectFilesFromStruct(v reflect.Value, files *[]filePart) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		value := v.Field(i)

		if field.Anonymous && value.Kind() == reflect.Struct {
			collectFilesFromStruct(value, files)
			continue
		}

		if upload, ok := value.Interface().(*dto.FileUpload); ok && upload != nil {
			*files = append(*files, filePart{field: fieldName(field), upload: upload})
		}
	}
}

func encodeMultipart(payload interface{}, files []filePart) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if err := writeStructFields(writer, v); err != nil {
		return nil, "", err
	}

	for _, fp := range files {
		part, err := writer.CreateFormFile(fp.field, fp.upload.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(fp.upload.Content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func writeStructFields(writer *multipart.Writer, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		value := v.Field(i)

		if field.Anonymous && value.Kind() == reflect.Struct {
			if err := writeStructFields(writer, value); err != nil {
				return err
			}
			continue
		}

		// Файлы пишутся отдельно, как form-file.
		if _, ok := value.Interface().(*dto.FileUpload); ok {
			continue
		}

		name := fieldName(field)
		if name == "-" {
			continue
		}

		for value.Kind() == reflect.Ptr {
			if value.IsNil() {
				name = ""
				break
			}
			value = value.Elem()
		}
		if name == "" {
			continue
		}

		switch value.Kind() {
		case reflect.String:
			if err := writer.WriteField(name, value.String()); err != nil {
				return err
			}
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			if err := writer.WriteField(name, fmt.Sprint(value.Interface())); err != nil {
				return err
			}
		default:
			// Непримитивное поле (структура, срез, null-тип) — JSON-строкой.
			raw, err := json.Marshal(value.Interface())
			if err != nil {
				return err
			}
			if string(raw) == "null" {
				continue
			}
			if err := writer.WriteField(name, string(raw)); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldName отдаёт имя поля для формы: тег form, затем json, затем само имя.
func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("form"); tag != "" {
		return strings.SplitN(tag, ",", 2)[0]
	}
	if tag := field.Tag.Get("json"); tag != "" {
		return strings.SplitN(tag, ",", 2)[0]
	}
	return strings.ToLower(field.Name)
}
