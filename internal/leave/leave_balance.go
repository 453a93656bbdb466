package leave

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const balanceKeyPrefix = "leave:balance:"

// balanceCacheTTL is short on purpose: mutations invalidate explicitly, the
// TTL only bounds staleness when an invalidation is lost.
const balanceCacheTTL = 10 * time.Minute

func balanceKey(employeeID string, year int) string {
	return fmt.Sprintf("%s%s:%d", balanceKeyPrefix, employeeID, year)
}

// Balance reports the point-in-time allowance summary for an employee and
// year (current year when year is zero). Used counts APPROVED requests of
// every type, sick leave included, even though sick leave never constrains
// the allowance checks. Remaining never goes negative.
func (s *service) Balance(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	if _, err := s.employees.Lookup(ctx, employeeID); err != nil {
		return BalanceResponse{}, err
	}

	cacheKey := balanceKey(employeeID, year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp BalanceResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent misses for the same employee/year.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		allowance, err := s.allowance.AnnualAllowance(ctx)
		if err != nil {
			return nil, err
		}

		approved, err := s.repo.FindApprovedByYear(ctx, employeeID, year)
		if err != nil {
			return nil, err
		}

		used := 0
		for _, l := range approved {
			used += l.TotalDays
		}
		remaining := allowance - used
		if remaining < 0 {
			remaining = 0
		}

		resp := BalanceResponse{
			Year:           year,
			TotalAllowance: allowance,
			Used:           used,
			Remaining:      remaining,
			LeaveRequests:  mapToListResponse(approved),
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, balanceCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return BalanceResponse{}, err
	}

	return v.(BalanceResponse), nil
}

func (s *service) invalidateBalance(ctx context.Context, employeeID string, years ...int) {
	if s.rdb == nil {
		return
	}
	seen := make(map[int]struct{}, len(years))
	for _, year := range years {
		if _, ok := seen[year]; ok {
			continue
		}
		seen[year] = struct{}{}

		key := balanceKey(employeeID, year)
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			s.logger.Error("failed to invalidate leave balance cache",
				zap.Error(err),
				zap.String("key", key),
			)
		}
	}
}
