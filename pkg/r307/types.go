package r307

// Идентификаторы пакетов
const (
	pidCommand = 0x01
	pidAck     = 0x07
)

// Коды инструкций
const (
	insGenImg          = 0x01
	insImg2Tz          = 0x02
	insRegModel        = 0x05
	insStore           = 0x06
	insDeleteChar      = 0x0C
	insEmpty           = 0x0D
	insReadSysPara     = 0x0F
	insVerifyPassword  = 0x13
	insHighSpeedSearch = 0x1B
	insTemplateNum     = 0x1D
)

// Коды подтверждения модуля
const (
	CodeOK              byte = 0x00
	CodePacketError     byte = 0x01
	CodeNoFinger        byte = 0x02
	CodeEnrollFail      byte = 0x03
	CodeImageMessy      byte = 0x06
	CodeFewFeatures     byte = 0x07
	CodeNoMatch         byte = 0x08
	CodeNotFound        byte = 0x09
	CodeCombineFail     byte = 0x0A
	CodeBadLocation     byte = 0x0B
	CodeReadTemplate    byte = 0x0C
	CodeUploadTemplate  byte = 0x0D
	CodeDeleteFail      byte = 0x10
	CodeClearFail       byte = 0x11
	CodeWrongPassword   byte = 0x13
	CodeInvalidImage    byte = 0x15
	CodeFlashError      byte = 0x18
	CodeInvalidRegister byte = 0x1A
)

// Номера буферов признаков
const (
	CharBuffer1 byte = 0x01
	CharBuffer2 byte = 0x02
)

const (
	// DefaultAddress широковещательный адрес модуля по умолчанию
	DefaultAddress uint32 = 0xFFFFFFFF
	// DefaultBaudRate скорость UART модуля после сброса (N=6, 9600*6)
	DefaultBaudRate = 57600
	// DefaultTimeout таймаут ожидания ответа в миллисекундах
	DefaultTimeout = 2000
)

// SystemParameters ответ на ReadSysPara
type SystemParameters struct {
	StatusRegister uint16
	SystemID       uint16
	LibrarySize    uint16
	SecurityLevel  uint16
	DeviceAddress  uint32
	PacketSize     uint16
	BaudMultiplier uint16
}

// SearchResult ответ на Search / HighSpeedSearch
type SearchResult struct {
	PageID uint16
	Score  uint16
}
