package bulkimport

type RejectedRowResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// ImportResultResponse reports a finished upload: how many rows were
// committed and which were skipped, in upload order.
type ImportResultResponse struct {
	AcceptedCount int                   `json:"accepted_count"`
	RejectedCount int                   `json:"rejected_count"`
	Rejected      []RejectedRowResponse `json:"rejected"`
}

func NewImportResultResponse(res BatchResult) ImportResultResponse {
	resp := ImportResultResponse{
		AcceptedCount: len(res.Accepted),
		RejectedCount: len(res.Rejected),
		Rejected:      make([]RejectedRowResponse, 0, len(res.Rejected)),
	}
	for _, rej := range res.Rejected {
		resp.Rejected = append(resp.Rejected, RejectedRowResponse{
			Row:    rej.Row,
			Reason: string(rej.Reason),
			Detail: rej.Detail,
		})
	}
	return resp
}
