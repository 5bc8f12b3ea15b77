package summary

import (
	"net/http"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/respond"
	sumUC "genai-summarizer/internal/usecase/summary"
)

// maxJSONBody bounds JSON request bodies on the text and batch routes.
const maxJSONBody = 2 << 20

type TextHandler struct{ Svc *sumUC.Service }

// ServeHTTP テキスト要約
// @Summary      テキスト要約
// @Description  送信されたテキストを指定の長さで要約し、履歴に保存します
// @Tags         summaries
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body summarizeRequest true "要約対象テキスト"
// @Success      200 {object} DTO "要約結果"
// @Failure      400 {object} respond.ErrorBody "入力が不正"
// @Failure      401 {object} respond.ErrorBody "認証情報が不正"
// @Failure      500 {object} respond.ErrorBody "要約失敗"
// @Router       /api/summarize [post]
func (h TextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := owner(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req summarizeRequest
	if err := decodeJSON(r, &req, maxJSONBody); err != nil {
		respond.Error(w, r, err)
		return
	}
	tier, err := entity.ParseLengthTier(req.SummaryLength)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rec, err := h.Svc.Summarize(r.Context(), sumUC.TextInput{Text: req.Text}, tier, ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(rec))
}
