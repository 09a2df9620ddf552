package player

import "context"

// Repository describes player registry persistence needs from use cases.
type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
	GetCharacteristic(ctx context.Context, name string) (Characteristic, bool, error)
	List(ctx context.Context) ([]Player, error)
	Insert(ctx context.Context, p Player) error
	SetCharacteristic(ctx context.Context, name string, c Characteristic) (found bool, modified bool, err error)
}
