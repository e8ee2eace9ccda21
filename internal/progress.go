package internal

// 进度回调：已完成数、总数、当前文件
type ProgressFunc func(done, total int, current string)
