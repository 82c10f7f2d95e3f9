package service

// AuthorizationService 鉴权门：只有配置的所有者可以触发任何操作。
type AuthorizationService interface {
	// Authorize allow iff the sender identity is present and equals the
	// configured owner identity. Stateless, no side effects.
	Authorize(senderID int64, hasSender bool) bool
}

type authorizationServiceImpl struct {
	ownerID int64
}

// NewAuthorizationService 创建鉴权服务
func NewAuthorizationService(ownerID int64) AuthorizationService {
	return &authorizationServiceImpl{ownerID: ownerID}
}

func (s *authorizationServiceImpl) Authorize(senderID int64, hasSender bool) bool {
	return hasSender && senderID == s.ownerID
}
