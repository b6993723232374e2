package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-order-bot/models"
	"github.com/yeremiapane/cafe-order-bot/services"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

var tableNumberPattern = regexp.MustCompile(`\d+`)

// WebhookController adalah titik masuk semua pesan WhatsApp: order katalog,
// teks bebas (lewat classifier), dan tap tombol. Handler selalu membalas
// 2xx — status gagal membuat Meta mengirim ulang delivery yang sama dan
// pesanan jadi dobel.
type WebhookController struct {
	Carts       *services.CartService
	Classifier  services.IntentClassifier
	Sender      services.MessageSender
	Menu        utils.Menu
	VerifyToken string
}

func NewWebhookController(carts *services.CartService, classifier services.IntentClassifier,
	sender services.MessageSender, menu utils.Menu, verifyToken string) *WebhookController {
	return &WebhookController{
		Carts:       carts,
		Classifier:  classifier,
		Sender:      sender,
		Menu:        menu,
		VerifyToken: verifyToken,
	}
}

// VerifyWebhook menangani handshake verifikasi GET dari Meta.
func (wc *WebhookController) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == wc.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "Verification failed")
}

// HandleWebhook menerima satu delivery webhook POST.
func (wc *WebhookController) HandleWebhook(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	msg, ok := payload.FirstMessage()
	if !ok || msg.From == "" || msg.Type == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	switch msg.Type {
	case "order":
		wc.handleOrder(msg)
	case "text":
		wc.handleText(c.Request.Context(), msg)
	case "interactive":
		wc.handleButton(msg)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleOrder memproses pesanan dari katalog: resolve kode produk ke nama
// menu, merge ke keranjang, lalu kirim ringkasan plus tombol aksi lanjutan.
func (wc *WebhookController) handleOrder(msg *models.InboundMessage) {
	if msg.Order == nil {
		return
	}

	items := make([]services.IncomingItem, 0, len(msg.Order.ProductItems))
	for _, p := range msg.Order.ProductItems {
		items = append(items, services.IncomingItem{
			Name:  wc.Menu.Resolve(p.ProductRetailerID),
			Qty:   p.Quantity,
			Price: p.ItemPrice,
		})
	}

	cart, err := wc.Carts.AddItems(msg.From, items, "")
	if err != nil {
		utils.ErrorLogger.Printf("add items for %s: %v", msg.From, err)
		return
	}

	wc.sendText(msg.From, wc.Carts.RenderSummary(cart))
	wc.sendNextActions(msg.From)
}

// handleText memproses teks bebas. Penunjukan meja dicek dengan aturan cepat
// sebelum classifier dipanggil; sisanya di-branch berdasarkan intent hasil
// klasifikasi.
func (wc *WebhookController) handleText(ctx context.Context, msg *models.InboundMessage) {
	if msg.Text == nil {
		return
	}
	raw := msg.Text.Body
	lower := strings.ToLower(raw)

	if strings.Contains(lower, "table") || strings.Contains(lower, "meja") {
		if number := tableNumberPattern.FindString(lower); number != "" {
			if _, err := wc.Carts.SetTable(msg.From, number); err != nil {
				utils.ErrorLogger.Printf("set table for %s: %v", msg.From, err)
				return
			}
			wc.sendText(msg.From, fmt.Sprintf(
				"👋 Hai! Kamu duduk di meja %s. Kamu bisa ketik *menu* untuk lihat menu, atau langsung tulis mau pesan apa 😊",
				number))
			return
		}
	}

	snapshot, err := wc.Carts.Snapshot(msg.From)
	if err != nil {
		utils.ErrorLogger.Printf("snapshot for %s: %v", msg.From, err)
	}
	action := wc.Classifier.Classify(ctx, raw, snapshot)

	// Balasan classifier selalu dikirim duluan
	if action.Reply != "" {
		wc.sendText(msg.From, action.Reply)
	}

	switch action.Intent {
	case models.IntentShowMenu:
		wc.sendCatalog(msg.From)
	case models.IntentShowCart:
		wc.replyShowCart(msg.From)
	case models.IntentCancelAll:
		wc.replyCancelAll(msg.From)
	case models.IntentCancelItem:
		wc.replyCancelItem(msg.From, action)
	case models.IntentPay:
		wc.replyPay(msg.From)
	case models.IntentAddItem:
		// Keranjang sengaja tidak diubah di sini; pelanggan memilih item
		// lewat katalog supaya harga dan kode produk tetap dari katalog.
		wc.sendCatalog(msg.From)
	default:
		// help / none: cukup balasan classifier
	}
}

func (wc *WebhookController) replyShowCart(from string) {
	cart, ok, err := wc.Carts.Cart(from)
	if err != nil {
		utils.ErrorLogger.Printf("load cart for %s: %v", from, err)
		return
	}
	if !ok || len(cart.Order) == 0 {
		wc.sendText(from, "Keranjang kamu masih kosong. Ketik *menu* untuk mulai pesan 😊")
		return
	}
	wc.sendText(from, wc.Carts.RenderReceipt(cart))
	wc.sendNextActions(from)
}

func (wc *WebhookController) replyCancelAll(from string) {
	cleared, err := wc.Carts.Clear(from)
	if err != nil {
		utils.ErrorLogger.Printf("clear cart for %s: %v", from, err)
		return
	}
	if cleared {
		wc.sendText(from, "❌ Semua pesanan kamu sudah aku batalkan.")
	} else {
		wc.sendText(from, "Sepertinya belum ada pesanan yang aktif.")
	}
}

func (wc *WebhookController) replyCancelItem(from string, action models.Action) {
	cart, ok, err := wc.Carts.Cart(from)
	if err != nil {
		utils.ErrorLogger.Printf("load cart for %s: %v", from, err)
		return
	}
	if !ok || len(cart.Order) == 0 {
		wc.sendText(from, "Keranjangmu masih kosong, belum ada item yang bisa dihapus.")
		return
	}
	if action.CancelIndex == nil {
		wc.sendText(from, "Biar aku bisa bantu, tulis seperti: *hapus 1 2* (hapus 2 porsi dari item nomor 1).")
		return
	}

	qty := 0
	if action.CancelQty != nil {
		qty = *action.CancelQty
	}

	res, err := wc.Carts.RemoveQuantity(from, *action.CancelIndex, qty)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		wc.sendText(from, "Keranjangmu masih kosong, belum ada item yang bisa dihapus.")
		return
	case errors.Is(err, services.ErrInvalidIndex):
		wc.sendText(from, "Nomor itemnya belum tepat, coba cek lagi ya 😊")
		return
	case err != nil:
		utils.ErrorLogger.Printf("remove quantity for %s: %v", from, err)
		return
	}

	var confirm string
	if res.RemovedLine {
		confirm = fmt.Sprintf("🗑️ Semua '%s' sudah aku hapus.", res.ItemName)
	} else {
		confirm = fmt.Sprintf("🗑️ '%s' aku kurangi %d.", res.ItemName, res.RemovedQty)
	}

	if res.CartDeleted {
		wc.sendText(from, confirm+"\n\n🛒 Sekarang keranjangmu sudah kosong.")
		return
	}
	wc.sendText(from, confirm+"\n\n"+wc.Carts.RenderReceipt(res.Cart))
	wc.sendNextActions(from)
}

func (wc *WebhookController) replyPay(from string) {
	cart, ok, err := wc.Carts.Cart(from)
	if err != nil {
		utils.ErrorLogger.Printf("load cart for %s: %v", from, err)
		return
	}
	total := 0
	if ok {
		total = cart.Total
	}
	if total <= 0 {
		wc.sendText(from, "Sepertinya belum ada pesanan yang bisa dibayar. Ketik *menu* untuk mulai 😊")
		return
	}
	wc.sendPaymentOptions(from, total)
}

// handleButton memproses tap tombol; aksinya langsung, tanpa classifier.
func (wc *WebhookController) handleButton(msg *models.InboundMessage) {
	if msg.Interactive == nil || msg.Interactive.ButtonReply == nil {
		return
	}

	switch msg.Interactive.ButtonReply.ID {
	case services.ButtonOrderMore:
		wc.sendCatalog(msg.From)
	case services.ButtonOrderCancel:
		cleared, err := wc.Carts.Clear(msg.From)
		if err != nil {
			utils.ErrorLogger.Printf("clear cart for %s: %v", msg.From, err)
			return
		}
		if cleared {
			wc.sendText(msg.From, "❌ Semua pesanan kamu sudah aku batalkan.")
		} else {
			wc.sendText(msg.From, "Belum ada pesanan aktif yang bisa dibatalkan.")
		}
	case services.ButtonPayNow:
		cart, ok, err := wc.Carts.Cart(msg.From)
		if err != nil {
			utils.ErrorLogger.Printf("load cart for %s: %v", msg.From, err)
			return
		}
		if !ok || cart.Total <= 0 {
			wc.sendText(msg.From, "Belum ada pesanan yang bisa dibayar. Ketik *menu* untuk mulai.")
			return
		}
		wc.sendPaymentOptions(msg.From, cart.Total)
	case services.ButtonPayQRIS:
		wc.sendText(msg.From, "📸 Silakan scan QRIS di kasir atau yang sudah kami sediakan ya.")
	case services.ButtonPayCash:
		wc.sendText(msg.From, "💵 Baik, silakan bayar tunai di kasir saat pesanan diantar atau diambil.")
	case services.ButtonPayVA:
		wc.sendText(msg.From, "🏦 Pembayaran via Virtual Account akan diinformasikan oleh kasir. Terima kasih 😊")
	}
}

// Pengiriman balasan fire-and-forget: gagal kirim hanya dicatat.

func (wc *WebhookController) sendText(to, body string) {
	if err := wc.Sender.SendText(to, body); err != nil {
		utils.ErrorLogger.Printf("send text to %s: %v", to, err)
	}
}

func (wc *WebhookController) sendCatalog(to string) {
	if err := wc.Sender.SendCatalog(to); err != nil {
		utils.ErrorLogger.Printf("send catalog to %s: %v", to, err)
	}
}

func (wc *WebhookController) sendNextActions(to string) {
	if err := wc.Sender.SendNextActions(to); err != nil {
		utils.ErrorLogger.Printf("send next actions to %s: %v", to, err)
	}
}

func (wc *WebhookController) sendPaymentOptions(to string, total int) {
	if err := wc.Sender.SendPaymentOptions(to, total); err != nil {
		utils.ErrorLogger.Printf("send payment options to %s: %v", to, err)
	}
}
