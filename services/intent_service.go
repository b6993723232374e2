package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/cafe-order-bot/models"
	"github.com/yeremiapane/cafe-order-bot/utils"
)

// IntentClassifier menerjemahkan pesan teks bebas menjadi models.Action.
// Implementasi wajib menyerap semua kegagalan upstream (service mati,
// kredensial kosong, output tidak valid) menjadi Action fallback yang
// deterministik; Classify tidak pernah mengembalikan error dan tidak boleh
// memblokir tanpa batas.
type IntentClassifier interface {
	Classify(ctx context.Context, message string, cart []models.CartEntry) models.Action
}

const classifierSystemPrompt = `You are a multilingual AI assistant for a restaurant WhatsApp ordering bot.

Your job:
1. Understand the USER MESSAGE in any language.
2. Detect whether the user is using Indonesian (ID) or English (EN).
3. ALWAYS reply in the SAME language they used. If mixed, choose English. Never mix both languages in one reply.
4. Convert the message into a structured JSON ACTION for the backend.

You MUST ALWAYS return PURE JSON with:

{
  "intent": "<intent>",
  "cancel_index": null or number,
  "cancel_qty": null or number,
  "reply": "<friendly reply in the user's language>"
}

SUPPORTED INTENTS
- "show_menu": user wants to see menu
- "show_cart": user wants to see their cart
- "cancel_item": user wants to remove quantity of an item
- "cancel_all": user wants to remove all items
- "pay": user wants to proceed to payment
- "add_item": user mentions food items in free text (e.g., "lasagne 2", "I want tea 1").
  NOTE: you DO NOT modify the cart; just confirm and the backend will open the catalog.
- "help": user confused
- "none": smalltalk, greetings, unclear

CANCEL FORMAT INTERPRETATION
- "hapus 1 2" / "delete 1 2": item #1, qty 2
- "hapus 1": cancel ALL of item #1
If the item is not found, respond politely in the same language.

ADD_ITEM BEHAVIOR
- Do NOT guess prices or item codes, do NOT change the cart.
- Confirm nicely what the user wants and tell them the catalog will appear.

TONE: friendly, polite, casual but professional. No slang. Never scold the user.
Your final output MUST be valid JSON ONLY. No explanation, no markdown, no text around it.`

// OpenAIClassifier memanggil chat-completions API dengan response_format
// json_object. Bahasa balasan mengikuti bahasa pesan masuk; itu kontrak di
// prompt, tidak divalidasi ulang di sini.
type OpenAIClassifier struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIClassifier(apiKey string) *OpenAIClassifier {
	return &OpenAIClassifier{
		apiKey:  apiKey,
		model:   "gpt-4o-mini",
		baseURL: "https://api.openai.com/v1/chat/completions",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// fallbackNoKey dipakai saat API key tidak dikonfigurasi.
func fallbackNoKey() models.Action {
	return models.Action{
		Intent: models.IntentNone,
		Reply:  "Ketik *menu* untuk lihat menu, atau *cart* untuk lihat pesananmu 😊",
	}
}

// fallbackUnparsed dipakai saat panggilan gagal atau output tidak bisa
// dibaca.
func fallbackUnparsed() models.Action {
	return models.Action{
		Intent: models.IntentNone,
		Reply:  "Maaf, aku agak bingung baca pesannya. Kamu bisa tulis ulang, atau ketik *menu* / *cart* 😊",
	}
}

func (oc *OpenAIClassifier) Classify(ctx context.Context, message string, cart []models.CartEntry) models.Action {
	if oc.apiKey == "" {
		return fallbackNoKey()
	}

	userPayload, err := json.Marshal(map[string]interface{}{
		"user_message": message,
		"current_cart": cart,
	})
	if err != nil {
		return fallbackUnparsed()
	}

	reqBody, err := json.Marshal(map[string]interface{}{
		"model": oc.model,
		"messages": []map[string]string{
			{"role": "system", "content": classifierSystemPrompt},
			{"role": "user", "content": string(userPayload)},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.3,
	})
	if err != nil {
		return fallbackUnparsed()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, oc.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return fallbackUnparsed()
	}
	req.Header.Set("Authorization", "Bearer "+oc.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := oc.httpClient.Do(req)
	if err != nil {
		utils.ErrorLogger.Printf("classifier call failed: %v", err)
		return fallbackUnparsed()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.ErrorLogger.Printf("classifier read failed: %v", err)
		return fallbackUnparsed()
	}
	if resp.StatusCode != http.StatusOK {
		utils.ErrorLogger.Printf("classifier returned status %d: %s", resp.StatusCode, body)
		return fallbackUnparsed()
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil || len(completion.Choices) == 0 {
		utils.ErrorLogger.Printf("classifier response unreadable: %v", err)
		return fallbackUnparsed()
	}

	return normalizeAction([]byte(completion.Choices[0].Message.Content))
}

// normalizeAction memaksa output model ke bentuk Action: intent lowercase
// (default none), field cancel boleh nil, reply boleh kosong. Model kadang
// mengirim angka sebagai string, jadi koersinya longgar. Output yang bukan
// objek JSON valid jatuh ke fallback.
func normalizeAction(raw []byte) models.Action {
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		utils.ErrorLogger.Printf("classifier action unparsable: %v", err)
		return fallbackUnparsed()
	}

	intent := models.IntentNone
	if v, ok := out["intent"].(string); ok && strings.TrimSpace(v) != "" {
		intent = strings.ToLower(strings.TrimSpace(v))
	}

	return models.Action{
		Intent:      intent,
		CancelIndex: coerceInt(out["cancel_index"]),
		CancelQty:   coerceInt(out["cancel_qty"]),
		Reply:       stringOrEmpty(out["reply"]),
	}
}

func coerceInt(v interface{}) *int {
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil
		}
		return &i
	default:
		return nil
	}
}

func stringOrEmpty(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
