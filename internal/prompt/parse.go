package prompt

import "gemini-forge/internal/domain"

// Parse は正規化済みリクエストをタスク variant に変換し、タスク固有の必須項目を検証します。
func Parse(req domain.NormalizedRequest) (Task, error) {
	var (
		task Task
		err  error
	)

	switch req.Task {
	case domain.TaskRewriteContent:
		task, err = newRewriteTask(req.Params)
	case domain.TaskGenerateArticle:
		task, err = newArticleTask(req.Params)
	case domain.TaskGenerateFBPost:
		task, err = newFBPostTask(req.Params)
	default:
		return nil, domain.NewError(domain.KindUnknownTask, "錯誤：未知的任務類型。")
	}

	if err != nil {
		return nil, err
	}
	return task, nil
}
