package pricing

import (
	"encoding/json"
	"fmt"
	"strings"

	"biomed-backend/internal/domain"
)

// Session metadata keys. The items summary is round-tripped through the
// gateway as serialized text because the provider does not return full
// line-item structures reliably; the schema key lets future formats
// coexist with already-created sessions.
const (
	metaItems       = "items"
	metaSchema      = "items_schema"
	itemsSchemaV1   = "v1"
	maxMetaValueLen = 500
)

// Customer is the optional contact block submitted with a checkout.
type Customer struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	DeliveryNotes string `json:"deliveryNotes"`
}

// Trimmed returns a copy with surrounding whitespace removed from
// every field.
func (c Customer) Trimmed() Customer {
	return Customer{
		Name:          strings.TrimSpace(c.Name),
		Email:         strings.TrimSpace(c.Email),
		Phone:         strings.TrimSpace(c.Phone),
		Address:       strings.TrimSpace(c.Address),
		City:          strings.TrimSpace(c.City),
		PostalCode:    strings.TrimSpace(c.PostalCode),
		DeliveryNotes: strings.TrimSpace(c.DeliveryNotes),
	}
}

// SessionMetadata assembles the string-keyed metadata sent with a
// checkout session. Customer values are truncated here, before the
// gateway is invoked, because the provider enforces a hard per-field
// size ceiling and a local cut beats an opaque remote rejection.
func SessionMetadata(cust Customer, items []ItemSummary) (map[string]string, error) {
	encoded, err := EncodeItems(items)
	if err != nil {
		return nil, err
	}
	m := map[string]string{
		metaItems:  encoded,
		metaSchema: itemsSchemaV1,
	}
	setMeta(m, "customer_name", cust.Name)
	setMeta(m, "customer_email_meta", cust.Email)
	setMeta(m, "customer_phone", cust.Phone)
	setMeta(m, "customer_address", cust.Address)
	setMeta(m, "customer_city", cust.City)
	setMeta(m, "customer_postal_code", cust.PostalCode)
	setMeta(m, "delivery_notes", cust.DeliveryNotes)
	return m, nil
}

// EncodeItems serializes normalized items for metadata transport.
func EncodeItems(items []ItemSummary) (string, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(raw), nil
}

// DecodeItems reconstructs order items from session metadata. A session
// without an items entry yields an empty list rather than an error;
// sessions created before the schema key was introduced decode as v1.
func DecodeItems(metadata map[string]string) ([]domain.OrderItem, error) {
	raw, ok := metadata[metaItems]
	if !ok || raw == "" {
		return []domain.OrderItem{}, nil
	}
	if schema, ok := metadata[metaSchema]; ok && schema != itemsSchemaV1 {
		return nil, fmt.Errorf("unknown items schema %q", schema)
	}
	var items []domain.OrderItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// CustomerFromMetadata recovers the customer contact block stored with
// a session.
func CustomerFromMetadata(metadata map[string]string) Customer {
	return Customer{
		Name:          metadata["customer_name"],
		Email:         metadata["customer_email_meta"],
		Phone:         metadata["customer_phone"],
		Address:       metadata["customer_address"],
		City:          metadata["customer_city"],
		PostalCode:    metadata["customer_postal_code"],
		DeliveryNotes: metadata["delivery_notes"],
	}
}

func setMeta(m map[string]string, key, value string) {
	if value == "" {
		return
	}
	m[key] = truncateMeta(value)
}

func truncateMeta(s string) string {
	runes := []rune(s)
	if len(runes) <= maxMetaValueLen {
		return s
	}
	return string(runes[:maxMetaValueLen])
}
