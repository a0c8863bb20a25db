package chat

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// FallbackExtractor is a rule-based intent and slot parser. It serves
// when no remote interpreter is configured and as the safety net when
// the remote one fails.
type FallbackExtractor struct{}

func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

func (e *FallbackExtractor) Extract(_ context.Context, message string) (Extraction, error) {
	normalized := NormalizeMessage(message)
	quantity, hasQuantity := extractQuantity(normalized)
	query := extractQuery(normalized)
	intent := detectIntent(normalized, hasQuantity, query)

	slots := map[string]any{
		"item_code": nil,
		"quantity":  nil,
		"warehouse": nil,
		"location":  nil,
		"query":     nil,
	}
	if hasQuantity {
		slots["quantity"] = quantity
	}
	if query != "" {
		slots["query"] = query
	}

	return Extraction{
		Intent:  intent,
		Slots:   slots,
		Missing: missingSlots(intent, slots),
	}, nil
}

// Common misspellings seen in operator messages.
var spellCorrections = map[string]string{
	"reomve": "remove", "remov": "remove", "rmove": "remove",
	"delet": "delete", "dleet": "delete", "deleet": "delete",
	"serch": "search", "saerch": "search", "sarch": "search",
	"edti": "edit", "eidt": "edit",
	"opne": "open", "oepn": "open",
	"updte": "update", "updae": "update",
	"recieve": "receive", "recive": "receive", "receve": "receive",
	"inventry": "inventory", "inventroy": "inventory", "inventary": "inventory",
	"chek": "check", "cheque": "check",
	"quantiy": "quantity", "quanity": "quantity", "quntity": "quantity",
	"warehose": "warehouse", "warehoues": "warehouse",
	"custmer": "customer", "customar": "customer", "cusotmer": "customer",
	"cancle": "cancel", "cancl": "cancel",
	"increse": "increase", "increae": "increase",
	"reprot": "report", "reoprt": "report",
	"sumary": "summary", "summry": "summary",
	"stok": "stock", "stck": "stock",
	"ad": "add", "aad": "add",
}

// NormalizeMessage corrects common spelling mistakes word by word,
// preserving case and trailing punctuation.
func NormalizeMessage(message string) string {
	words := strings.Fields(message)
	out := make([]string, 0, len(words))
	for _, word := range words {
		clean := strings.ToLower(strings.Trim(word, ".,!?;:"))
		corrected, ok := spellCorrections[clean]
		if !ok {
			out = append(out, word)
			continue
		}
		if len(word) > 1 && word[0] >= 'A' && word[0] <= 'Z' {
			corrected = strings.ToUpper(corrected[:1]) + corrected[1:]
		}
		for _, p := range []string{".", ",", "!", "?", ";", ":"} {
			if strings.HasSuffix(word, p) {
				corrected += p
				break
			}
		}
		out = append(out, corrected)
	}
	return strings.Join(out, " ")
}

func levenshtein(s1, s2 string) int {
	if len(s1) < len(s2) {
		s1, s2 = s2, s1
	}
	if len(s2) == 0 {
		return len(s1)
	}
	prev := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 0; i < len(s1); i++ {
		cur := make([]int, len(s2)+1)
		cur[0] = i + 1
		for j := 0; j < len(s2); j++ {
			cost := 0
			if s1[i] != s2[j] {
				cost = 1
			}
			cur[j+1] = min3(prev[j+1]+1, cur[j]+1, prev[j]+cost)
		}
		prev = cur
	}
	return prev[len(s2)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func fuzzyMatches(word, keyword string, maxDistance int) bool {
	return levenshtein(strings.ToLower(word), strings.ToLower(keyword)) <= maxDistance
}

// Covers POS-123, PO 456, GRN-78, SO-9, DO-10 and friends.
var referenceRegexp = regexp.MustCompile(`(?i)\b(?:POS|PO|REF|GRN|INV|REC|BATCH|SO|DO)[-\s]?\d+\b`)

var (
	quantityRegexp = regexp.MustCompile(`\b(\d+)\b`)
	taggedRegexp   = regexp.MustCompile(`(?i)\b(?:customer|batch|item|reference|ref|pos|po|grn|name|warehouse|wh)\s*[:\-]?\s*([A-Za-z0-9][A-Za-z0-9\s\-_]{0,40})`)
	taggedNoise    = regexp.MustCompile(`(?i)\b(?:item|line|record|row|entry|quantity|qty)\b`)
	quotedRegexp   = regexp.MustCompile(`["']([^"']+)["']`)
	fillerRegexp   = regexp.MustCompile(`(?i)^(?:more\s+)?(?:quantity|qty|pieces?|units?|items?|in|of|for|to|into)\s+`)
	tokenRegexp    = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9\-_]*)\b`)
	wordRegexp     = regexp.MustCompile(`\b\w+\b`)
	spaceRegexp    = regexp.MustCompile(`\s+`)
)

func extractQuantity(message string) (int64, bool) {
	m := quantityRegexp.FindString(message)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func cleanValue(v string) string {
	return strings.TrimSpace(spaceRegexp.ReplaceAllString(v, " "))
}

// extractQuery finds the most likely search term: a structured
// reference code first, then a tagged keyword, a quoted string, the
// token after a number, and finally the first meaningful alpha token.
func extractQuery(message string) string {
	text := strings.TrimSpace(message)

	if ref := referenceRegexp.FindString(text); ref != "" {
		return ref
	}

	if m := taggedRegexp.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if loc := taggedNoise.FindStringIndex(raw); loc != nil {
			raw = raw[:loc[0]]
		}
		if v := cleanValue(raw); v != "" {
			return v
		}
	}

	if m := quotedRegexp.FindStringSubmatch(text); m != nil {
		if v := cleanValue(m[1]); v != "" {
			return v
		}
	}

	if loc := quantityRegexp.FindStringIndex(text); loc != nil {
		after := strings.TrimSpace(text[loc[1]:])
		after = fillerRegexp.ReplaceAllString(after, "")
		if m := tokenRegexp.FindStringSubmatch(after); m != nil {
			return m[1]
		}
	}

	skip := map[string]bool{
		"i": true, "want": true, "to": true, "the": true, "a": true,
		"an": true, "please": true, "show": true, "me": true,
		"can": true, "you": true, "find": true, "search": true,
		"open": true, "edit": true, "update": true, "delete": true,
		"remove": true, "add": true, "increase": true, "more": true,
		"of": true, "in": true, "for": true, "get": true, "check": true,
	}
	for _, m := range tokenRegexp.FindAllStringSubmatch(text, -1) {
		tok := m[1]
		if !skip[strings.ToLower(tok)] && len(tok) > 1 {
			return tok
		}
	}
	return ""
}

var (
	deleteKeywords = []string{"delete", "remove", "drop", "cancel", "erase"}
	adjustKeywords = []string{"add", "increase", "more", "extra", "plus", "qty add", "update quantity", "enter", "put more"}
	editKeywords   = []string{"edit", "update", "change", "open", "modify", "show record", "show details", "find", "search"}
	receiveKeywords = []string{
		"receive", "recv", "inward", "stock up", "add stock", "restock",
		"stock add", "add item", "add items", "put stock", "put item",
		"store", "keep", "incoming", "goods in", "grn", "stock receive",
		"item add",
	}
	inventoryKeywords = []string{"inventory", "stock level", "stock status"}
	reportKeywords    = []string{"report", "summary"}
)

func hasKeyword(text string, words, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	for _, w := range words {
		for _, k := range keywords {
			if !strings.Contains(k, " ") && fuzzyMatches(w, k, 2) {
				return true
			}
		}
	}
	return false
}

// detectIntent prefers exact keyword hits and falls back to fuzzy
// matches within edit distance 2. check_inventory is tried before
// receive_stock because its keywords are more specific.
func detectIntent(text string, hasQuantity bool, query string) string {
	low := strings.ToLower(text)
	words := wordRegexp.FindAllString(low, -1)

	switch {
	case hasKeyword(low, words, deleteKeywords) && query != "":
		return "delete_line"
	case hasKeyword(low, words, adjustKeywords) && hasQuantity && query != "":
		return "adjust_quantity"
	case hasKeyword(low, words, editKeywords) && query != "":
		return "open_record"
	case hasKeyword(low, words, inventoryKeywords):
		return "check_inventory"
	case hasKeyword(low, words, receiveKeywords):
		return "receive_stock"
	case hasKeyword(low, words, reportKeywords):
		return "report"
	}
	return "unknown"
}

func slotEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case int64:
		return x == 0
	case float64:
		return x == 0
	}
	return false
}

func missingSlots(intent string, slots map[string]any) []string {
	missing := make([]string, 0)
	switch intent {
	case "receive_stock":
		for _, k := range []string{"item_code", "quantity", "warehouse", "location"} {
			if slotEmpty(slots[k]) {
				missing = append(missing, k)
			}
		}
	case "adjust_quantity":
		for _, k := range []string{"quantity", "query"} {
			if slotEmpty(slots[k]) {
				missing = append(missing, k)
			}
		}
	case "delete_line", "open_record":
		if slotEmpty(slots["query"]) {
			missing = append(missing, "query")
		}
	}
	return missing
}
