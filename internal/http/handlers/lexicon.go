package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kikitori/kikitori-backend/internal/http/response"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
	"github.com/kikitori/kikitori-backend/internal/services"
)

type LexiconHandler struct {
	log     *logger.Logger
	lexicon services.LexiconService
}

func NewLexiconHandler(log *logger.Logger, lexicon services.LexiconService) *LexiconHandler {
	return &LexiconHandler{
		log:     log.With("handler", "LexiconHandler"),
		lexicon: lexicon,
	}
}

type wordPayload struct {
	Japanese   string `json:"japanese"`
	KanjiChars string `json:"kanji"`
	Romaji     string `json:"romaji"`
	Meaning    string `json:"meaning"`
}

type kanjiPayload struct {
	Character    string `json:"character"`
	Reading      string `json:"reading"`
	Meaning      string `json:"meaning"`
	HanjaMeaning string `json:"hanja_meaning"`
}

type recordPhraseRequest struct {
	Words []wordPayload  `json:"words"`
	Kanji []kanjiPayload `json:"kanji"`
}

func (h *LexiconHandler) RecordPhrase(c *gin.Context) {
	phraseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_phrase_id", err)
		return
	}
	var req recordPhraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	words := make([]services.WordInput, 0, len(req.Words))
	for _, w := range req.Words {
		words = append(words, services.WordInput{
			Japanese:   w.Japanese,
			KanjiChars: w.KanjiChars,
			Romaji:     w.Romaji,
			Meaning:    w.Meaning,
		})
	}
	kanji := make([]services.KanjiInput, 0, len(req.Kanji))
	for _, k := range req.Kanji {
		kanji = append(kanji, services.KanjiInput{
			Character:    k.Character,
			Reading:      k.Reading,
			Meaning:      k.Meaning,
			HanjaMeaning: k.HanjaMeaning,
		})
	}
	if err := h.lexicon.RecordPhrase(c.Request.Context(), phraseID, words, kanji); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "lexicon_record_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"status": "ok"})
}

func (h *LexiconHandler) ListPhraseWords(c *gin.Context) {
	phraseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_phrase_id", err)
		return
	}
	words, err := h.lexicon.GetPhraseWords(c.Request.Context(), phraseID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "words_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"words": words})
}

func (h *LexiconHandler) ListPhraseKanji(c *gin.Context) {
	phraseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_phrase_id", err)
		return
	}
	kanji, err := h.lexicon.GetPhraseKanji(c.Request.Context(), phraseID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "phrase_kanji_list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"kanji": kanji})
}
