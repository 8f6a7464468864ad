package connector

import "github.com/jackc/pgx/v5/pgxpool"

// ConnectionStats represents database connection pool statistics.
type ConnectionStats struct {
	OpenConnections int
	InUse           int
	Idle            int
}

// PoolStats summarizes a pgx pool.
func PoolStats(pool *pgxpool.Pool) ConnectionStats {
	if pool == nil {
		return ConnectionStats{}
	}
	s := pool.Stat()
	return ConnectionStats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}
