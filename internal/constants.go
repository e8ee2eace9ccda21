package internal

const (
	// 配置文件所在目录名（位于 XDG 配置目录下）
	AppName = "file-organizer"

	// 撤销日志默认容量
	DefaultUndoCapacity = 100

	// 无法归类时的兜底分类
	OtherCategory = "Other"

	// 重复文件存放目录
	DefaultDuplicatesFolder = "Duplicates"

	// 按字母归类时的父目录
	AlphabeticalFolder = "Alphabetical"

	// 按扩展名归类时目录名后缀，例如 txt_Files
	ExtensionFolderSuffix = "_Files"

	// 按日期归类时的默认目录格式（年-月）
	DefaultDateLayout = "2006-01"

	// 哈希计算时的读取缓冲区大小
	DefaultBufferSize = 32 * 1024

	// 文件类型检测所需的文件头部大小（字节）
	FileHeaderSize = 261
)
