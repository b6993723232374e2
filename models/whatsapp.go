package models

// Payload webhook WhatsApp Cloud API (Meta Graph). Hanya field yang
// dipakai bot yang dimodelkan; sisanya diabaikan saat unmarshal.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []InboundMessage `json:"messages,omitempty"`
}

// InboundMessage adalah satu pesan masuk. Type menentukan payload mana
// yang terisi: text, order (pesanan dari katalog), atau interactive
// (tap tombol).
type InboundMessage struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *TextBody           `json:"text,omitempty"`
	Order       *OrderPayload       `json:"order,omitempty"`
	Interactive *InteractivePayload `json:"interactive,omitempty"`
}

type TextBody struct {
	Body string `json:"body"`
}

type OrderPayload struct {
	CatalogID    string        `json:"catalog_id"`
	ProductItems []ProductItem `json:"product_items"`
}

type ProductItem struct {
	ProductRetailerID string `json:"product_retailer_id"`
	Quantity          int    `json:"quantity"`
	ItemPrice         int    `json:"item_price"`
	Currency          string `json:"currency,omitempty"`
}

type InteractivePayload struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FirstMessage mengambil pesan pertama dari delivery. Webhook Meta bisa
// berisi status update tanpa messages; false berarti tidak ada yang
// perlu diproses.
func (p *WebhookPayload) FirstMessage() (*InboundMessage, bool) {
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) > 0 {
				return &change.Value.Messages[0], true
			}
		}
	}
	return nil, false
}
