package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"inventory-system/internal/entities"
	"inventory-system/internal/typemap"
)

// Десять параллельных подресурсов характеристик обслуживаются одним набором
// методов: семейство выбирается тегом typemap.Kind, путь — из справочника.

func resourcePath(kind typemap.Kind) (string, error) {
	info, ok := typemap.ByKind(kind)
	if !ok {
		return "", fmt.Errorf("неизвестное семейство характеристик: %s", kind)
	}
	return "/" + info.Resource + "/", nil
}

// Specifications возвращает все шаблоны семейства, завёрнутые в сумму-тип.
func (c *Client) Specifications(ctx context.Context, kind typemap.Kind) ([]entities.Specification, error) {
	path, err := resourcePath(kind)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.request(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeSpecifications(kind, raw)
}

func decodeSpecifications(kind typemap.Kind, raw json.RawMessage) ([]entities.Specification, error) {
	wrap := func(n int, fill func(i int) entities.Specification) []entities.Specification {
		out := make([]entities.Specification, n)
		for i := range out {
			out[i] = fill(i)
		}
		return out
	}

	switch kind {
	case typemap.KindComputer:
		var items []entities.ComputerSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Computer: &items[i]}
		}), nil
	case typemap.KindNotebook:
		var items []entities.NotebookSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Notebook: &items[i]}
		}), nil
	case typemap.KindMonoblok:
		var items []entities.MonoblokSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Monoblok: &items[i]}
		}), nil
	case typemap.KindProjector:
		var items []entities.ProjectorSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Projector: &items[i]}
		}), nil
	case typemap.KindPrinter:
		var items []entities.PrinterSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Printer: &items[i]}
		}), nil
	case typemap.KindTV:
		var items []entities.TVSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, TV: &items[i]}
		}), nil
	case typemap.KindRouter:
		var items []entities.RouterSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Router: &items[i]}
		}), nil
	case typemap.KindWhiteboard:
		var items []entities.WhiteboardSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Whiteboard: &items[i]}
		}), nil
	case typemap.KindExtender:
		var items []entities.ExtenderSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Extender: &items[i]}
		}), nil
	case typemap.KindMonitor:
		var items []entities.MonitorSpecification
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return wrap(len(items), func(i int) entities.Specification {
			return entities.Specification{Kind: kind, Monitor: &items[i]}
		}), nil
	}
	return nil, fmt.Errorf("неизвестное семейство характеристик: %s", kind)
}

// variantPayload достаёт из суммы-типа заполненный вариант для отправки.
func variantPayload(spec entities.Specification) (interface{}, error) {
	switch spec.Kind {
	case typemap.KindComputer:
		return spec.Computer, nil
	case typemap.KindNotebook:
		return spec.Notebook, nil
	case typemap.KindMonoblok:
		return spec.Monoblok, nil
	case typemap.KindProjector:
		return spec.Projector, nil
	case typemap.KindPrinter:
		return spec.Printer, nil
	case typemap.KindTV:
		return spec.TV, nil
	case typemap.KindRouter:
		return spec.Router, nil
	case typemap.KindWhiteboard:
		return spec.Whiteboard, nil
	case typemap.KindExtender:
		return spec.Extender, nil
	case typemap.KindMonitor:
		return spec.Monitor, nil
	}
	return nil, fmt.Errorf("неизвестное семейство характеристик: %s", spec.Kind)
}

func (c *Client) CreateSpecification(ctx context.Context, spec entities.Specification) (*entities.Specification, error) {
	path, err := resourcePath(spec.Kind)
	if err != nil {
		return nil, err
	}
	payload, err := variantPayload(spec)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.request(ctx, http.MethodPost, path, payload, &raw); err != nil {
		return nil, err
	}
	created, err := decodeSpecifications(spec.Kind, wrapSingle(raw))
	if err != nil || len(created) == 0 {
		return nil, err
	}
	return &created[0], nil
}

func (c *Client) UpdateSpecification(ctx context.Context, spec entities.Specification) (*entities.Specification, error) {
	path, err := resourcePath(spec.Kind)
	if err != nil {
		return nil, err
	}
	payload, err := variantPayload(spec)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	url := fmt.Sprintf("%s%d/", path, spec.RecordID())
	if err := c.request(ctx, http.MethodPut, url, payload, &raw); err != nil {
		return nil, err
	}
	updated, err := decodeSpecifications(spec.Kind, wrapSingle(raw))
	if err != nil || len(updated) == 0 {
		return nil, err
	}
	return &updated[0], nil
}

func (c *Client) DeleteSpecification(ctx context.Context, kind typemap.Kind, id uint64) error {
	path, err := resourcePath(kind)
	if err != nil {
		return err
	}
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", path, id), nil, nil)
}

// wrapSingle превращает одиночный объект в массив для общего декодера.
func wrapSingle(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("[]")
	}
	out := make([]byte, 0, len(raw)+2)
	out = append(out, '[')
	out = append(out, raw...)
	out = append(out, ']')
	return out
}
