package domain

// TaskKind はクライアントが指定する生成タスクの種別です。
type TaskKind string

const (
	TaskRewriteContent  TaskKind = "rewrite_content"
	TaskGenerateArticle TaskKind = "generate_article"
	TaskGenerateFBPost  TaskKind = "generate_fb_post"
)

// taskResponseFields はタスクごとの成功レスポンスのフィールド名です。
// prompt パッケージのタスク variant と常に一対一で対応させます。
var taskResponseFields = map[TaskKind]string{
	TaskRewriteContent:  "rewrittenText",
	TaskGenerateArticle: "articleText",
	TaskGenerateFBPost:  "fbPostText",
}

// ParseTaskKind は既知のタスク名のみを受け付けます。
func ParseTaskKind(raw string) (TaskKind, bool) {
	kind := TaskKind(raw)
	_, ok := taskResponseFields[kind]
	return kind, ok
}

// TaskKinds は既知のタスクを固定順で返します。
func TaskKinds() []TaskKind {
	return []TaskKind{TaskRewriteContent, TaskGenerateArticle, TaskGenerateFBPost}
}

// ResponseField はタスクの出力を包む JSON フィールド名を返します。
func (k TaskKind) ResponseField() (string, bool) {
	field, ok := taskResponseFields[k]
	return field, ok
}

func (k TaskKind) String() string {
	return string(k)
}

// Response は成功時のレスポンスで、タスクに対応するフィールドを 1 つだけ持ちます。
type Response struct {
	Field string
	Text  string
}

// MarshalJSON は {"<Field>": "<Text>"} の形で出力します。
func (r Response) MarshalJSON() ([]byte, error) {
	return marshalSingleField(r.Field, r.Text)
}

// NewResponse はタスク種別からフィールド名を引き、レスポンスを組み立てます。
func NewResponse(kind TaskKind, text string) (Response, error) {
	field, ok := kind.ResponseField()
	if !ok {
		return Response{}, NewError(KindInternal, "錯誤：任務回傳失敗。")
	}
	return Response{Field: field, Text: text}, nil
}
