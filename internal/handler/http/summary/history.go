package summary

import (
	"net/http"

	"genai-summarizer/internal/handler/http/respond"
	sumUC "genai-summarizer/internal/usecase/summary"
)

type HistoryHandler struct{ Svc *sumUC.Service }

// ServeHTTP 要約履歴取得
// @Summary      要約履歴取得
// @Description  呼び出し元ユーザーの要約を作成順に返します
// @Tags         summaries
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} HistoryResponse "履歴"
// @Failure      401 {object} respond.ErrorBody "認証情報が不正"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/history [get]
func (h HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := owner(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	records, err := h.Svc.History(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	out := HistoryResponse{Summaries: make([]DTO, 0, len(records)), Total: len(records)}
	for _, rec := range records {
		out.Summaries = append(out.Summaries, toDTO(rec))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *sumUC.Service }

// ServeHTTP 要約取得
// @Summary      要約取得
// @Description  指定IDの要約を返します。他ユーザーの要約は403になります
// @Tags         summaries
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "要約ID"
// @Success      200 {object} DTO "要約"
// @Failure      401 {object} respond.ErrorBody "認証情報が不正"
// @Failure      403 {object} respond.ErrorBody "アクセス拒否"
// @Failure      404 {object} respond.ErrorBody "見つからない"
// @Router       /api/summary/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := owner(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rec, err := h.Svc.Get(r.Context(), r.PathValue("id"), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(rec))
}

type DeleteHandler struct{ Svc *sumUC.Service }

// ServeHTTP 要約削除
// @Summary      要約削除
// @Description  指定IDの要約を削除します
// @Tags         summaries
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "要約ID"
// @Success      200 {object} MessageResponse "削除完了"
// @Failure      401 {object} respond.ErrorBody "認証情報が不正"
// @Failure      403 {object} respond.ErrorBody "アクセス拒否"
// @Failure      404 {object} respond.ErrorBody "見つからない"
// @Router       /api/summary/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := owner(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), r.PathValue("id"), ownerID); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, MessageResponse{Message: "Summary deleted successfully"})
}
