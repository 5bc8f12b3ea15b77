package summary

import (
	"net/http"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/respond"
	sumUC "genai-summarizer/internal/usecase/summary"
)

type URLHandler struct{ Svc *sumUC.Service }

// ServeHTTP URL要約
// @Summary      URL要約
// @Description  指定URLのページ本文を取得して要約します（フォームまたはJSON）
// @Tags         summaries
// @Security     BearerAuth
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        url            formData string true  "取得するURL (http/https)"
// @Param        summary_length formData string false "short / medium / long" default(medium)
// @Success      200 {object} DTO "要約結果"
// @Failure      400 {object} respond.ErrorBody "URLが不正"
// @Failure      401 {object} respond.ErrorBody "認証情報が不正"
// @Failure      422 {object} respond.ErrorBody "取得または抽出失敗"
// @Failure      500 {object} respond.ErrorBody "要約失敗"
// @Router       /api/summarize/url [post]
func (h URLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := owner(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req urlRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req, maxJSONBody); err != nil {
			respond.Error(w, r, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			respond.Error(w, r, entity.ValidationError("Invalid form body"))
			return
		}
		req.URL = r.PostFormValue("url")
		req.SummaryLength = r.PostFormValue("summary_length")
	}

	tier, err := entity.ParseLengthTier(req.SummaryLength)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rec, err := h.Svc.Summarize(r.Context(), sumUC.URLInput{URL: req.URL}, tier, ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(rec))
}
