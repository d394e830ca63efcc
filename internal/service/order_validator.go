package service

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strings"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/pkg/errors"
)

// ParseOrderSubmission checks a raw order payload and converts it to an
// order ready to be stored. Checks run in a fixed order and the first
// failure is returned:
//
//  1. orderNumber, customerName, customerEmail are non-empty strings and
//     items is an array (ErrMalformedRequest)
//  2. items is not empty (ErrEmptyCart)
//  3. every item has a positive integer book, quantity and price (ErrInvalidItem)
//  4. totalAmount is a positive integer (ErrInvalidTotal)
//
// Price and quantity are taken as submitted; nothing is checked against
// the catalog here.
func ParseOrderSubmission(body []byte) (*domain.Order, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, &errors.ErrMalformedRequest{Reason: "body must be a JSON object"}
	}
	if _, err := dec.Token(); raw == nil || err != io.EOF {
		return nil, &errors.ErrMalformedRequest{Reason: "body must be a JSON object"}
	}

	orderNumber, ok := nonEmptyString(raw["orderNumber"])
	if !ok {
		return nil, &errors.ErrMalformedRequest{Field: "orderNumber"}
	}
	customerName, ok := nonEmptyString(raw["customerName"])
	if !ok {
		return nil, &errors.ErrMalformedRequest{Field: "customerName"}
	}
	customerEmail, ok := nonEmptyString(raw["customerEmail"])
	if !ok {
		return nil, &errors.ErrMalformedRequest{Field: "customerEmail"}
	}
	rawItems, ok := raw["items"].([]interface{})
	if !ok {
		return nil, &errors.ErrMalformedRequest{Field: "items"}
	}

	var phone *string
	switch v := raw["customerPhone"].(type) {
	case nil:
	case string:
		if p := strings.TrimSpace(v); p != "" {
			phone = &p
		}
	default:
		return nil, &errors.ErrMalformedRequest{Field: "customerPhone"}
	}

	status := domain.OrderStatusPending
	switch v := raw["status"].(type) {
	case nil:
	case string:
		if v != "" {
			status = domain.OrderStatus(v)
		}
	default:
		return nil, &errors.ErrMalformedRequest{Field: "status"}
	}

	if len(rawItems) == 0 {
		return nil, &errors.ErrEmptyCart{}
	}

	items := make([]domain.OrderItem, 0, len(rawItems))
	for i, ri := range rawItems {
		fields, _ := ri.(map[string]interface{})

		book, ok := positiveInt(fields["book"])
		if !ok {
			return nil, &errors.ErrInvalidItem{Index: i, Field: "book", Value: fields["book"]}
		}
		quantity, ok := positiveInt(fields["quantity"])
		if !ok {
			return nil, &errors.ErrInvalidItem{Index: i, Field: "quantity", Value: fields["quantity"]}
		}
		price, ok := positiveInt(fields["price"])
		if !ok {
			return nil, &errors.ErrInvalidItem{Index: i, Field: "price", Value: fields["price"]}
		}

		items = append(items, domain.OrderItem{
			BookID:   book,
			Quantity: int(quantity),
			Price:    price,
		})
	}

	total, ok := positiveInt(raw["totalAmount"])
	if !ok {
		return nil, &errors.ErrInvalidTotal{Value: raw["totalAmount"]}
	}

	return &domain.Order{
		OrderNumber:   orderNumber,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerEmail: strings.TrimSpace(customerEmail),
		CustomerPhone: phone,
		Items:         items,
		TotalAmount:   total,
		Status:        status,
	}, nil
}

func nonEmptyString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// positiveInt accepts a JSON number holding an integer greater than zero,
// including whole numbers written with a fraction or exponent such as 1e2
func positiveInt(v interface{}) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, i > 0
	}
	f, err := n.Float64()
	if err != nil || f <= 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
