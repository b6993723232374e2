package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yeremiapane/cafe-order-bot/utils"
)

// ID tombol interaktif yang dikenali dispatcher.
const (
	ButtonOrderMore   = "ORDER_MORE"
	ButtonPayNow      = "PAY_NOW"
	ButtonOrderCancel = "ORDER_CANCEL"
	ButtonPayQRIS     = "PAY_QRIS"
	ButtonPayCash     = "PAY_CASH"
	ButtonPayVA       = "PAY_VA"
)

// MessageSender mengirim pesan keluar lewat WhatsApp Cloud API. Semua kirim
// bersifat fire-and-forget dari sudut pandang dispatcher: error hanya untuk
// dicatat, tidak pernah menggagalkan pemrosesan webhook.
type MessageSender interface {
	SendText(to, body string) error
	SendCatalog(to string) error
	SendNextActions(to string) error
	SendPaymentOptions(to string, total int) error
}

// WhatsAppService memanggil endpoint /{phone_id}/messages di Graph API.
type WhatsAppService struct {
	token      string
	graphURL   string
	httpClient *http.Client
}

func NewWhatsAppService(token, phoneNumberID string) *WhatsAppService {
	return &WhatsAppService{
		token:    token,
		graphURL: fmt.Sprintf("https://graph.facebook.com/v19.0/%s/messages", phoneNumberID),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (ws *WhatsAppService) send(payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, ws.graphURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+ws.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ws.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	utils.InfoLogger.Printf("WA send status %d", resp.StatusCode)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send failed: status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

func (ws *WhatsAppService) SendText(to, body string) error {
	return ws.send(map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": body},
	})
}

// SendCatalog membuka katalog menu di sisi pelanggan.
func (ws *WhatsAppService) SendCatalog(to string) error {
	return ws.send(map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]interface{}{
			"type":   "catalog_message",
			"body":   map[string]string{"text": "🍽️ Silakan lihat katalog menu kami di bawah ini:"},
			"action": map[string]string{"name": "catalog_message"},
		},
	})
}

// SendNextActions menawarkan aksi lanjutan setelah keranjang berubah.
func (ws *WhatsAppService) SendNextActions(to string) error {
	return ws.send(map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]interface{}{
			"type": "button",
			"body": map[string]string{"text": "Apa yang ingin kamu lakukan selanjutnya?"},
			"action": map[string]interface{}{
				"buttons": []map[string]interface{}{
					replyButton(ButtonOrderMore, "Tambah Pesanan"),
					replyButton(ButtonPayNow, "Bayar Sekarang"),
					replyButton(ButtonOrderCancel, "❌ Batalkan Pesanan"),
				},
			},
		},
	})
}

// SendPaymentOptions menampilkan pilihan metode pembayaran.
func (ws *WhatsAppService) SendPaymentOptions(to string, total int) error {
	return ws.send(map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]interface{}{
			"type": "button",
			"body": map[string]string{
				"text": fmt.Sprintf("💰 Total pesanan kamu %s IDR.\nPilih metode pembayaran:", utils.FormatThousands(total)),
			},
			"action": map[string]interface{}{
				"buttons": []map[string]interface{}{
					replyButton(ButtonPayQRIS, "QRIS"),
					replyButton(ButtonPayCash, "Cash"),
					replyButton(ButtonPayVA, "Virtual Account"),
				},
			},
		},
	})
}

func replyButton(id, title string) map[string]interface{} {
	return map[string]interface{}{
		"type": "reply",
		"reply": map[string]string{
			"id":    id,
			"title": title,
		},
	}
}
