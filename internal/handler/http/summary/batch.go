package summary

import (
	"net/http"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/respond"
	sumUC "genai-summarizer/internal/usecase/summary"
)

type BatchHandler struct{ Svc *sumUC.Service }

// ServeHTTP バッチ要約
// @Summary      バッチ要約
// @Description  複数テキストを個別に要約します。失敗した項目はエラーとして同じ位置に返ります
// @Tags         summaries
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body batchRequest true "要約対象（最大10件）"
// @Success      200 {object} BatchResponse "各項目の結果"
// @Failure      400 {object} respond.ErrorBody "件数超過または入力不正"
// @Failure      401 {object} respond.ErrorBody "認証情報が不正"
// @Router       /api/batch [post]
func (h BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := owner(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req batchRequest
	if err := decodeJSON(r, &req, maxJSONBody); err != nil {
		respond.Error(w, r, err)
		return
	}
	tier, err := entity.ParseLengthTier(req.SummaryLength)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items := make([]sumUC.BatchItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = sumUC.TextItem{Text: it.Text}
	}

	results, err := h.Svc.SummarizeBatch(r.Context(), items, tier, ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out := BatchResponse{Processed: len(results), Results: make([]BatchEntry, len(results))}
	for i, res := range results {
		if res.Err != nil {
			out.Results[i] = BatchEntry{Error: entity.PublicMessage(res.Err)}
			continue
		}
		dto := toDTO(res.Record)
		out.Results[i] = BatchEntry{DTO: &dto}
	}
	respond.JSON(w, http.StatusOK, out)
}
