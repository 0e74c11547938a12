// Package solver 提供基于 CP-SAT 的周排班求解器
package solver

import (
	"fmt"
	"sort"

	"github.com/zhoupai/zhoupai/pkg/model"
)

// daySegment 某一天内的半开分钟区间 [start, end)
type daySegment struct {
	day   int
	start int
	end   int
}

// overlaps 检查两个同日区间是否重叠
// 半开区间语义：端点相接不算重叠
func (s daySegment) overlaps(other daySegment) bool {
	return s.day == other.day && s.start < other.end && other.start < s.end
}

// cellKey （日，班次，岗位）需求单元
type cellKey struct {
	day   int
	shift string
	role  string
}

// slotKey （日，班次）槽位
type slotKey struct {
	day   int
	shift string
}

// shiftPair 同一天内首尾相接的连班对（first 结束时刻 == second 开始时刻）
type shiftPair struct {
	first  string
	second string
}

// problem 规范化后的问题
// 所有时间都已转换为分钟，工时转换为 0.1 小时整数
type problem struct {
	staff       []model.Staff
	shiftNames  []string       // 排序后的班次名
	roles       []string       // 排序后的活跃岗位
	hoursTenths map[string]int // 班次 -> 工时（0.1 小时）
	startMin    map[string]int // 班次 -> 开始分钟
	endMin      map[string]int // 班次 -> 结束分钟
	wraps       map[string]bool

	// unavailable[(staffID, day, shift)] 为真表示员工该槽位不可用
	unavailable map[string]map[slotKey]bool

	// demand 只保留需求人数 > 0 的单元
	demand map[cellKey]int

	// pairs 连班对（对每一天都相同）
	pairs []shiftPair
}

// shiftSegments 返回班次在指定日占用的分钟区间
// 跨午夜班次占用当日 [start, 1440) 和次日 [0, end)
func (p *problem) shiftSegments(day int, shift string) []daySegment {
	start, end := p.startMin[shift], p.endMin[shift]
	if p.wraps[shift] {
		return []daySegment{
			{day: day, start: start, end: model.MinutesPerDay},
			{day: model.NextDay(day), start: 0, end: end},
		}
	}
	return []daySegment{{day: day, start: start, end: end}}
}

// available 检查员工在（日，班次）槽位是否可用
func (p *problem) available(staffID string, day int, shift string) bool {
	return !p.unavailable[staffID][slotKey{day: day, shift: shift}]
}

// cells 返回确定顺序的需求单元列表（日序 -> 班次名序 -> 岗位名序）
func (p *problem) cells() []cellKey {
	out := make([]cellKey, 0, len(p.demand))
	for day := range model.DaysOfWeek {
		for _, shift := range p.shiftNames {
			for _, role := range p.roles {
				key := cellKey{day: day, shift: shift, role: role}
				if p.demand[key] > 0 {
					out = append(out, key)
				}
			}
		}
	}
	return out
}

// normalize 将请求规范化为求解问题
func normalize(req *model.ScheduleRequest) (*problem, error) {
	p := &problem{
		staff:       req.StaffList,
		hoursTenths: make(map[string]int),
		startMin:    make(map[string]int),
		endMin:      make(map[string]int),
		wraps:       make(map[string]bool),
		unavailable: make(map[string]map[slotKey]bool),
		demand:      make(map[cellKey]int),
	}

	// 班次时间规范化
	for name, def := range req.ShiftDefinitions {
		start, err := model.ParseClock(def.Start)
		if err != nil {
			return nil, fmt.Errorf("班次 %s 开始时间无效: %w", name, err)
		}
		end, err := model.ParseClock(def.End)
		if err != nil {
			return nil, fmt.Errorf("班次 %s 结束时间无效: %w", name, err)
		}
		p.shiftNames = append(p.shiftNames, name)
		p.startMin[name] = start
		p.endMin[name] = end
		p.wraps[name] = end <= start
		p.hoursTenths[name] = def.HoursTenths()
	}
	sort.Strings(p.shiftNames)

	// 活跃岗位：员工偏好列表与需求中出现的岗位的并集
	roleSet := make(map[string]bool)
	for _, s := range req.StaffList {
		for _, r := range s.RolesInPreferenceOrder {
			roleSet[r] = true
		}
	}
	for day, dayNeeds := range req.WeeklyNeeds {
		dIdx := model.DayIndex(day)
		if dIdx < 0 {
			continue
		}
		for shift, shiftNeeds := range dayNeeds {
			if _, ok := p.startMin[shift]; !ok {
				continue
			}
			for role, required := range shiftNeeds {
				roleSet[role] = true
				if required > 0 {
					p.demand[cellKey{day: dIdx, shift: shift, role: role}] = required
				}
			}
		}
	}
	for r := range roleSet {
		p.roles = append(p.roles, r)
	}
	sort.Strings(p.roles)

	// 不可用时间展开：跨午夜的时间段延伸到次日凌晨；
	// 零长度时间段视为空
	blocked := make(map[string][]daySegment)
	for _, unav := range req.UnavailabilityList {
		dIdx := model.DayIndex(unav.DayOfWeek)
		if dIdx < 0 {
			continue
		}
		for _, span := range unav.Shifts {
			start, err := model.ParseClock(span.Start)
			if err != nil {
				return nil, fmt.Errorf("员工 %s 不可用时间无效: %w", unav.EmployeeID, err)
			}
			end, err := model.ParseClock(span.End)
			if err != nil {
				return nil, fmt.Errorf("员工 %s 不可用时间无效: %w", unav.EmployeeID, err)
			}
			if start == end {
				continue
			}
			if end < start {
				blocked[unav.EmployeeID] = append(blocked[unav.EmployeeID],
					daySegment{day: dIdx, start: start, end: model.MinutesPerDay},
					daySegment{day: model.NextDay(dIdx), start: 0, end: end})
			} else {
				blocked[unav.EmployeeID] = append(blocked[unav.EmployeeID],
					daySegment{day: dIdx, start: start, end: end})
			}
		}
	}

	// 可用性：不可用区间与班次占用区间有重叠即整个槽位不可用
	for _, s := range req.StaffList {
		segs := blocked[s.ID]
		if len(segs) == 0 {
			continue
		}
		slots := make(map[slotKey]bool)
		for day := range model.DaysOfWeek {
			for _, shift := range p.shiftNames {
				for _, shiftSeg := range p.shiftSegments(day, shift) {
					hit := false
					for _, seg := range segs {
						if seg.overlaps(shiftSeg) {
							hit = true
							break
						}
					}
					if hit {
						slots[slotKey{day: day, shift: shift}] = true
						break
					}
				}
			}
		}
		if len(slots) > 0 {
			p.unavailable[s.ID] = slots
		}
	}

	// 连班对：同一天内 a 不跨午夜且 a 的结束时刻等于 b 的开始时刻
	for _, a := range p.shiftNames {
		if p.wraps[a] {
			continue
		}
		for _, b := range p.shiftNames {
			if a == b {
				continue
			}
			if p.endMin[a] == p.startMin[b] {
				p.pairs = append(p.pairs, shiftPair{first: a, second: b})
			}
		}
	}

	return p, nil
}
