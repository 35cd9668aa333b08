package logger

const (
	Main      = "main"
	SwitchCfg = "switchcfg"
	IfConfig  = "ifconfig"
	IfMgr     = "ifmgr"
	Notify    = "notify"
)
