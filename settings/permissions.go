package settings

// PermissionSettings 是透传的文档权限元数据，本引擎不做任何强制。
type PermissionSettings struct {
	CanPrint          bool
	CanModify         bool
	CanExtractContent bool
}

// NewPermissionSettings 默认全部放开。
func NewPermissionSettings() *PermissionSettings {
	return &PermissionSettings{CanPrint: true, CanModify: true, CanExtractContent: true}
}

// Clone 返回独立副本。
func (p *PermissionSettings) Clone() *PermissionSettings {
	if p == nil {
		return NewPermissionSettings()
	}
	clone := *p
	return &clone
}
