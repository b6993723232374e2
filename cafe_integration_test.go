package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/cafe-order-bot/config"
	"github.com/yeremiapane/cafe-order-bot/models"
	"github.com/yeremiapane/cafe-order-bot/router"
	"github.com/yeremiapane/cafe-order-bot/services"
	"github.com/yeremiapane/cafe-order-bot/store"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// scriptedClassifier membalas Action per pesan sesuai skrip percakapan.
type scriptedClassifier struct {
	script map[string]models.Action
}

func (sc *scriptedClassifier) Classify(_ context.Context, message string, _ []models.CartEntry) models.Action {
	if action, ok := sc.script[message]; ok {
		return action
	}
	return models.Action{Intent: models.IntentNone, Reply: "Maaf, aku kurang paham maksudnya 😊"}
}

// silentSender mencatat pesan keluar; tidak ada panggilan jaringan.
type silentSender struct {
	texts          []string
	paymentOptions []int
}

func (ss *silentSender) SendText(to, body string) error {
	ss.texts = append(ss.texts, body)
	return nil
}
func (ss *silentSender) SendCatalog(to string) error     { return nil }
func (ss *silentSender) SendNextActions(to string) error { return nil }
func (ss *silentSender) SendPaymentOptions(to string, total int) error {
	ss.paymentOptions = append(ss.paymentOptions, total)
	return nil
}

// TestEndToEndIntegration menguji flow utama:
// 0. Handshake verifikasi webhook
// 1. Order dari katalog -> keranjang terbentuk
// 2. "meja 2" -> nomor meja tercatat tanpa classifier
// 3. Intent pay -> opsi pembayaran dengan total yang benar
// 4. Login admin -> token
// 5. Dashboard: /admin/orders dan /admin/summary melihat keranjang tadi
func TestEndToEndIntegration(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	cfg := &config.Config{
		VerifyToken:       "verify-secret",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	}
	st := store.NewFileStore(filepath.Join(t.TempDir(), "orders_log.json"))
	carts := services.NewCartService(st)
	menu := utils.Menu{"C1": "Lasagne", "D1": "Es Teh Manis"}
	classifier := &scriptedClassifier{script: map[string]models.Action{
		"mau bayar sekarang": {Intent: models.IntentPay, Reply: "Siap, ini pilihan pembayarannya ya"},
	}}
	sender := &silentSender{}

	r := router.SetupRouter(cfg, st, menu, carts, classifier, sender)

	verifyWebhookTest(t, r)
	catalogOrderTest(t, r, st)
	bindTableTest(t, r, st)
	payFlowTest(t, r, sender)

	token := loginTest(t, r)
	dashboardTest(t, r, token)
}

func verifyWebhookTest(t *testing.T, r *gin.Engine) {
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=verify-secret&hub.challenge=777", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "777" {
		t.Fatalf("verify webhook: code=%d body=%q", w.Code, w.Body.String())
	}
}

func postWebhookJSON(t *testing.T, r *gin.Engine, body string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("webhook POST: code=%d body=%s", w.Code, w.Body.String())
	}
}

func inboundMessage(message string) string {
	return fmt.Sprintf(`{"object":"whatsapp_business_account","entry":[{"id":"1","changes":[{"field":"messages","value":{"messaging_product":"whatsapp","messages":[%s]}}]}]}`, message)
}

func catalogOrderTest(t *testing.T, r *gin.Engine, st store.OrderStore) {
	postWebhookJSON(t, r, inboundMessage(`{"from":"628123","id":"wamid.1","type":"order","order":{"product_items":[{"product_retailer_id":"C1","quantity":2,"item_price":15000},{"product_retailer_id":"D1","quantity":1,"item_price":8000}]}}`))

	orders, err := st.Load()
	if err != nil {
		t.Fatalf("load orders: %v", err)
	}
	cart, ok := orders["628123"]
	if !ok {
		t.Fatal("cart for 628123 not created")
	}
	if cart.Total != 38000 {
		t.Fatalf("expected total 38000, got %d", cart.Total)
	}
	if len(cart.Order) != 2 || cart.Order[0].Name != "Lasagne" {
		t.Fatalf("unexpected cart lines: %+v", cart.Order)
	}
	if cart.Status != models.StatusUnpaid {
		t.Fatalf("expected status unpaid, got %q", cart.Status)
	}
}

func bindTableTest(t *testing.T, r *gin.Engine, st store.OrderStore) {
	postWebhookJSON(t, r, inboundMessage(`{"from":"628123","id":"wamid.2","type":"text","text":{"body":"meja 2"}}`))

	orders, err := st.Load()
	if err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if orders["628123"].Table != "2" {
		t.Fatalf("expected table 2, got %q", orders["628123"].Table)
	}
}

func payFlowTest(t *testing.T, r *gin.Engine, sender *silentSender) {
	postWebhookJSON(t, r, inboundMessage(`{"from":"628123","id":"wamid.3","type":"text","text":{"body":"mau bayar sekarang"}}`))

	if len(sender.paymentOptions) != 1 || sender.paymentOptions[0] != 38000 {
		t.Fatalf("expected payment options for 38000, got %v", sender.paymentOptions)
	}

	// Tap tombol metode pembayaran
	postWebhookJSON(t, r, inboundMessage(fmt.Sprintf(`{"from":"628123","id":"wamid.4","type":"interactive","interactive":{"type":"button_reply","button_reply":{"id":%q,"title":"QRIS"}}}`, services.ButtonPayQRIS)))

	last := sender.texts[len(sender.texts)-1]
	if last == "" {
		t.Fatal("expected QRIS instruction text")
	}
}

func loginTest(t *testing.T, r *gin.Engine) string {
	body, _ := json.Marshal(map[string]string{
		"username": "admin",
		"password": "secret123",
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login: code=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("empty token from login")
	}
	return resp.Data.Token
}

func dashboardTest(t *testing.T, r *gin.Engine, token string) {
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("admin orders: code=%d body=%s", w.Code, w.Body.String())
	}

	var ordersResp struct {
		Data map[string]*models.Cart `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ordersResp); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if ordersResp.Data["628123"] == nil || ordersResp.Data["628123"].Total != 38000 {
		t.Fatalf("dashboard missing cart: %+v", ordersResp.Data)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("admin summary: code=%d body=%s", w.Code, w.Body.String())
	}

	var summaryResp struct {
		Data struct {
			GrossSales   int `json:"gross_sales"`
			Transactions int `json:"transactions"`
			ItemCount    int `json:"item_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summaryResp); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summaryResp.Data.GrossSales != 38000 || summaryResp.Data.Transactions != 1 || summaryResp.Data.ItemCount != 3 {
		t.Fatalf("unexpected summary: %+v", summaryResp.Data)
	}
}
