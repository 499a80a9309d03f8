package service

import (
	"crypto/sha1"
	"encoding/hex"
	"log"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	helper "kursusku_backend/internals/helpers"
)

// AnswerChoice adalah opsi jawaban yang aman ditampilkan ke peserta:
// id kanonik + teks, tanpa flag benar/salah.
type AnswerChoice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Dua bentuk kunci jawaban yang masih beredar di data lama.
type AnswerKeyVariant int

const (
	AnswerKeyUnknown AnswerKeyVariant = iota
	// AnswerKeyFlaggedOptions: [{"id","content","isCorrect"}]
	AnswerKeyFlaggedOptions
	// AnswerKeyKeyedOptions: {"options":[{"id","text"}],"correctAnswers":[ids]}
	AnswerKeyKeyedOptions
)

// AnswerKey adalah hasil normalisasi satu kunci jawaban. Variannya
// ditentukan SEKALI saat parse; setelah itu tidak ada sniffing ulang.
type AnswerKey struct {
	Variant AnswerKeyVariant

	choices    []AnswerChoice
	correct    map[string]struct{}
	byOriginal map[string]string // id mentah di blob -> id kanonik
}

type flaggedOption struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	IsCorrect bool   `json:"isCorrect"`
}

type keyedOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type keyedAnswerKey struct {
	Options        []keyedOption `json:"options"`
	CorrectAnswers []string      `json:"correctAnswers"`
}

// ParseAnswerKey menormalkan blob kunci jawaban. Blob yang tidak dikenali
// TIDAK menghasilkan error: hasilnya kunci kosong (semua submission non-kosong
// dinilai salah). Kebijakan silent-degradation ini disengaja; pemanggil harus
// siap menerimanya.
func ParseAnswerKey(raw []byte) AnswerKey {
	key := AnswerKey{
		Variant:    AnswerKeyUnknown,
		correct:    map[string]struct{}{},
		byOriginal: map[string]string{},
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		log.Println("[WARNING] kunci jawaban kosong, dinilai tanpa jawaban benar")
		return key
	}

	switch trimmed[0] {
	case '[':
		var opts []flaggedOption
		if err := sonic.Unmarshal([]byte(trimmed), &opts); err != nil {
			log.Printf("[WARNING] kunci jawaban (list) tidak bisa diparse: %v", err)
			return key
		}
		key.Variant = AnswerKeyFlaggedOptions
		for _, opt := range opts {
			cid := CanonicalAnswerID(opt.ID, opt.Content)
			if cid == "" {
				continue
			}
			key.choices = append(key.choices, AnswerChoice{ID: cid, Text: opt.Content})
			if opt.ID != "" {
				key.byOriginal[strings.TrimSpace(opt.ID)] = cid
			}
			if opt.IsCorrect {
				key.correct[cid] = struct{}{}
			}
		}
		return key

	case '{':
		var keyed keyedAnswerKey
		if err := sonic.Unmarshal([]byte(trimmed), &keyed); err != nil {
			log.Printf("[WARNING] kunci jawaban (object) tidak bisa diparse: %v", err)
			return key
		}
		if len(keyed.Options) == 0 && len(keyed.CorrectAnswers) == 0 {
			log.Println("[WARNING] kunci jawaban object tanpa options/correctAnswers")
			return key
		}
		key.Variant = AnswerKeyKeyedOptions
		for _, opt := range keyed.Options {
			cid := CanonicalAnswerID(opt.ID, opt.Text)
			if cid == "" {
				continue
			}
			key.choices = append(key.choices, AnswerChoice{ID: cid, Text: opt.Text})
			if opt.ID != "" {
				key.byOriginal[strings.TrimSpace(opt.ID)] = cid
			}
		}
		for _, id := range keyed.CorrectAnswers {
			cid := key.CanonicalizeSubmitted(id)
			if cid == "" {
				continue
			}
			key.correct[cid] = struct{}{}
		}
		return key

	default:
		log.Printf("[WARNING] bentuk kunci jawaban tidak dikenali: %.40q", trimmed)
		return key
	}
}

// CorrectSet: himpunan id kanonik jawaban benar. Jangan dimutasi pemanggil.
func (k AnswerKey) CorrectSet() map[string]struct{} {
	return k.correct
}

// Choices: opsi yang boleh dilihat peserta (flag benar sudah dibuang).
func (k AnswerKey) Choices() []AnswerChoice {
	return k.choices
}

// CanonicalizeSubmitted memetakan id dari submission ke id kanonik.
// Id yang cocok dengan id mentah di blob diterjemahkan lewat tabel;
// sisanya dinormalkan langsung.
func (k AnswerKey) CanonicalizeSubmitted(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if cid, ok := k.byOriginal[id]; ok {
		return cid
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// CanonicalAnswerID: id yang sudah UUID dipakai apa adanya (lowercase);
// selain itu id stabil diturunkan dari teks opsi supaya perbandingan
// antar-format tetap terdefinisi.
func CanonicalAnswerID(id, text string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	base := strings.TrimSpace(text)
	if base == "" {
		base = id
	}
	if base == "" {
		return ""
	}
	sum := sha1.Sum([]byte(strings.ToLower(base)))
	return helper.Slugify(base, 40) + "-" + hex.EncodeToString(sum[:4])
}
