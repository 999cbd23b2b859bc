package idea

// CreateIdeaRequest represents the request to create an idea
type CreateIdeaRequest struct {
	Title                 string  `json:"title" validate:"required,min=1,max=255"`
	Description           string  `json:"description" validate:"required"`
	Category              *string `json:"category,omitempty" validate:"omitempty,max=100"`
	DiscussionPeriod      string  `json:"discussion_period,omitempty" validate:"omitempty,discussion_period"`
	ProposedExecutionDate *string `json:"proposed_execution_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Submit                bool    `json:"submit"`
}

// UpdateIdeaRequest represents the request to update an idea; omitted fields are kept
type UpdateIdeaRequest struct {
	Version               int     `json:"version" validate:"min=0"`
	Title                 *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description           *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Category              *string `json:"category,omitempty" validate:"omitempty,max=100"`
	DiscussionPeriod      *string `json:"discussion_period,omitempty" validate:"omitempty,discussion_period"`
	ProposedExecutionDate *string `json:"proposed_execution_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ListIdeasRequest represents query parameters for listing ideas
type ListIdeasRequest struct {
	Status    *string `query:"status" validate:"omitempty,oneof=draft under_review pending_decision approved rejected needs_modification"`
	Category  *string `query:"category"`
	CreatedBy *string `query:"created_by" validate:"omitempty,uuid"`
	Search    string  `query:"search"`
	Page      int     `query:"page" validate:"min=0"`
	PageSize  int     `query:"page_size" validate:"min=0,max=100"`
	SortBy    string  `query:"sort_by" validate:"omitempty,oneof=created_at updated_at title status"`
	SortOrder string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// SearchIdeasRequest represents a full-text query
type SearchIdeasRequest struct {
	Query    string  `query:"q" validate:"required,min=1"`
	Status   *string `query:"status" validate:"omitempty,oneof=draft under_review pending_decision approved rejected needs_modification"`
	Page     int     `query:"page" validate:"min=0"`
	PageSize int     `query:"page_size" validate:"min=0,max=100"`
}

// AdjustDiscussionRequest extends or shortens the discussion period
type AdjustDiscussionRequest struct {
	Version   int    `json:"version" validate:"min=0"`
	Days      int    `json:"days" validate:"min=0,max=1825"`
	Hours     int    `json:"hours" validate:"min=0,max=43800"`
	Operation string `json:"operation" validate:"required,oneof=add subtract"`
}

// AddCommentRequest is sent as JSON or as multipart form with an optional "attachment" file
type AddCommentRequest struct {
	Content  string  `json:"content" form:"content" validate:"required"`
	ParentID *string `json:"parent_id,omitempty" form:"parent_id" validate:"omitempty,uuid"`
}

// VoteRequest casts or changes the caller's vote
type VoteRequest struct {
	Value string `json:"value" validate:"required,oneof=agree disagree neutral"`
}

// AssigneeRequest is one person responsible for executing a decision
type AssigneeRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name" validate:"required"`
	Responsibility string `json:"responsibility"`
}

// RecordDecisionRequest represents the admin outcome of an idea
type RecordDecisionRequest struct {
	Version   int               `json:"version" validate:"min=0"`
	Status    string            `json:"status" validate:"required,oneof=approved rejected needs_modification"`
	Reason    string            `json:"reason"`
	Assignees []AssigneeRequest `json:"assignees,omitempty" validate:"omitempty,dive"`
	Timeline  *string           `json:"timeline,omitempty" validate:"omitempty,max=255"`
	Budget    *string           `json:"budget,omitempty" validate:"omitempty,max=255"`
}

// ExportRequest selects the format and sections of an export
type ExportRequest struct {
	Format      string `query:"format" validate:"omitempty,oneof=txt zip pdf"`
	Details     *bool  `query:"details"`
	Comments    *bool  `query:"comments"`
	Votes       *bool  `query:"votes"`
	Decision    *bool  `query:"decision"`
	Attachments *bool  `query:"attachments"`
}
