package services

// CascadeReport describes what a delete's cleanup sweep touched. A delete
// that succeeds but whose sweep matched nothing still returns a report; the
// note explains the partial result.
type CascadeReport struct {
	Deleted        string `json:"deleted"`
	RecordsTouched int64  `json:"recordsTouched"`
	Note           string `json:"note,omitempty"`
}
