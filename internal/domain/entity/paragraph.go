// Package entity 定义领域实体
package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ParagraphStatus 段落状态
type ParagraphStatus string

const (
	ParagraphStatusDraft      ParagraphStatus = "draft"
	ParagraphStatusGenerating ParagraphStatus = "generating"
	ParagraphStatusCompleted  ParagraphStatus = "completed"
	ParagraphStatusError      ParagraphStatus = "error"
)

// 段落列表约束
const (
	MaxParagraphs    = 10
	MinTargetLength  = 100
	MaxTargetLength  = 3000
	MaxTotalLength   = 30000
	BaseTargetLength = 500
)

// 相邻移动方向
const (
	MoveDirectionUp   = "up"
	MoveDirectionDown = "down"
)

// Paragraph 段落实体
// order 为 1 起始的稠密序号，重排后始终保持 1..N
type Paragraph struct {
	ID           string          `json:"id"`
	Order        int             `json:"order"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Content      string          `json:"content"`
	TargetLength int             `json:"target_length"`
	Status       ParagraphStatus `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewParagraph 创建新段落（order 由列表赋值）
func NewParagraph(title, description string, targetLength int) *Paragraph {
	now := time.Now()
	return &Paragraph{
		ID:           uuid.New().String(),
		Title:        title,
		Description:  description,
		Content:      "",
		TargetLength: targetLength,
		Status:       ParagraphStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ActualLength 返回内容的实际字符数（按 rune 计）
func (p *Paragraph) ActualLength() int {
	return utf8.RuneCountInString(p.Content)
}

// SetContent 设置段落内容并标记完成
func (p *Paragraph) SetContent(content string) {
	p.Content = content
	p.Status = ParagraphStatusCompleted
	p.UpdatedAt = time.Now()
}

// ClampTargetLength 将目标字数收敛到 [100, 3000]
func ClampTargetLength(v int) int {
	if v < MinTargetLength {
		return MinTargetLength
	}
	if v > MaxTargetLength {
		return MaxTargetLength
	}
	return v
}

// ParagraphPatch 段落的部分更新
type ParagraphPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Content      *string `json:"content,omitempty"`
	TargetLength *int    `json:"target_length,omitempty"`
}

// ParagraphList 有序段落集合
// 所有变更操作维护不变式：order 恒为稠密的 1..N，长度不超过 MaxParagraphs
type ParagraphList []*Paragraph

// renumber 按当前数组位置重排 order 为 1..N
func (l ParagraphList) renumber() {
	for i, p := range l {
		p.Order = i + 1
	}
}

// indexOf 返回 id 对应的下标，未找到返回 -1
func (l ParagraphList) indexOf(id string) int {
	for i, p := range l {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Get 返回 id 对应的段落，未找到返回 nil
func (l ParagraphList) Get(id string) *Paragraph {
	if i := l.indexOf(id); i >= 0 {
		return l[i]
	}
	return nil
}

// Insert 追加段落，满员（10 个）时拒绝并保持列表不变
func (l *ParagraphList) Insert(p *Paragraph) bool {
	if len(*l) >= MaxParagraphs {
		return false
	}
	p.TargetLength = ClampTargetLength(p.TargetLength)
	p.Order = len(*l) + 1
	*l = append(*l, p)
	return true
}

// Remove 删除段落并重排剩余 order；id 不存在时为 no-op
func (l *ParagraphList) Remove(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
	l.renumber()
	return true
}

// Reorder 将段落移动到目标位置（1 起始），越界位置收敛到边界
func (l ParagraphList) Reorder(id string, position int) bool {
	from := l.indexOf(id)
	if from < 0 {
		return false
	}
	to := position - 1
	if to < 0 {
		to = 0
	}
	if to > len(l)-1 {
		to = len(l) - 1
	}
	if to == from {
		return true
	}
	p := l[from]
	if to < from {
		copy(l[to+1:from+1], l[to:from])
	} else {
		copy(l[from:to], l[from+1:to+1])
	}
	l[to] = p
	l.renumber()
	return true
}

// MoveAdjacent 向上/向下移动一位；首段上移、末段下移为 no-op
func (l ParagraphList) MoveAdjacent(id string, direction string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	switch direction {
	case MoveDirectionUp:
		if i == 0 {
			return false
		}
		l[i-1], l[i] = l[i], l[i-1]
	case MoveDirectionDown:
		if i == len(l)-1 {
			return false
		}
		l[i], l[i+1] = l[i+1], l[i]
	default:
		return false
	}
	l.renumber()
	return true
}

// Update 合并部分字段；targetLength 入库前收敛到 [100, 3000]；未知 id 为 no-op
func (l ParagraphList) Update(id string, patch *ParagraphPatch) bool {
	p := l.Get(id)
	if p == nil || patch == nil {
		return false
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.TargetLength != nil {
		p.TargetLength = ClampTargetLength(*patch.TargetLength)
	}
	p.UpdatedAt = time.Now()
	return true
}

// ReplaceAll 整体替换（构成再生成后使用），丢弃既有内容
func (l *ParagraphList) ReplaceAll(items []*Paragraph) {
	*l = append(ParagraphList(nil), items...)
	l.renumber()
}

// TotalTargetLength 目标字数合计
func (l ParagraphList) TotalTargetLength() int {
	sum := 0
	for _, p := range l {
		sum += p.TargetLength
	}
	return sum
}

// TotalActualLength 实际字数合计
func (l ParagraphList) TotalActualLength() int {
	sum := 0
	for _, p := range l {
		sum += p.ActualLength()
	}
	return sum
}

// OverTotalBudget 合计是否超过 30000 上限（仅用于 UI 警告，非错误）
func (l ParagraphList) OverTotalBudget() bool {
	return l.TotalTargetLength() > MaxTotalLength
}
