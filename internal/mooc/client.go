package mooc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kingpoem/moocscript/internal/constant"
	"github.com/kingpoem/moocscript/internal/model"
	"github.com/kingpoem/moocscript/pkg/logger"
)

// Client 慕课移动端接口客户端。所有接口走POST，鉴权靠mob-token查询参数
type Client struct {
	baseURL    string
	mobToken   string
	userAgent  string
	httpClient *http.Client
}

// NewClient 创建接口客户端。token为空时返回ErrTokenMissing
func NewClient(baseURL, mobToken, userAgent string, timeout time.Duration) (*Client, error) {
	if mobToken == "" {
		return nil, constant.ErrTokenMissing
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		mobToken:   mobToken,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// request 发起一次接口请求。传输层失败不返回error，
// 而是折叠成code为-1的Result，调用方统一按状态码处理
func (c *Client) request(ctx context.Context, endpoint string, query url.Values) *model.Result {
	if query == nil {
		query = url.Values{}
	}
	query.Set("mob-token", c.mobToken)

	reqURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/") + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return transportFailure(err)
	}
	req.Header.Set("edu-app-type", "android")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Referer", "https://www.icourse163.org/")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("请求失败", logger.F("endpoint", endpoint), logger.F("err", err))
		return transportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("接口返回异常状态码",
			logger.F("endpoint", endpoint),
			logger.F("status", resp.StatusCode))
		return transportFailure(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(err)
	}
	if !gjson.ValidBytes(body) {
		return transportFailure(constant.ErrInvalidResponse)
	}

	j := gjson.ParseBytes(body)
	return &model.Result{
		Status: model.Status{
			Code:    int(j.Get("status.code").Int()),
			Message: j.Get("status.message").String(),
		},
		Results: j.Get("results"),
		Raw:     body,
	}
}

func transportFailure(err error) *model.Result {
	return &model.Result{
		Status: model.Status{Code: -1, Message: fmt.Sprintf("Request failed: %v", err)},
	}
}

// CourseList 分页获取我的课程列表
func (c *Client) CourseList(ctx context.Context, page, pageSize int) *model.Result {
	return c.request(ctx, "mob/course/getAllMyCourseList/v2", url.Values{
		"p":     {strconv.Itoa(page)},
		"psize": {strconv.Itoa(pageSize)},
		"type":  {"30"},
	})
}

// CourseInfo 获取课程详情，含章节与测验/作业清单
func (c *Client) CourseInfo(ctx context.Context, courseID, termID int64) *model.Result {
	return c.request(ctx, "mob/course/courseLearn/v1", url.Values{
		"cid": {strconv.FormatInt(courseID, 10)},
		"tid": {strconv.FormatInt(termID, 10)},
	})
}

// PaperDetail 获取试卷详情，带标准答案与解析
func (c *Client) PaperDetail(ctx context.Context, testID int64) *model.Result {
	return c.request(ctx, "mob/course/paperDetail/v1", url.Values{
		"testId":                  {strconv.FormatInt(testID, 10)},
		"isExercise":              {"true"},
		"withStdAnswerAndAnalyse": {"true"},
	})
}

// HomeworkPaper 获取学期作业试卷
func (c *Client) HomeworkPaper(ctx context.Context, termID int64) *model.Result {
	return c.request(ctx, "mob/course/homeworkPaperDto/v1", url.Values{
		"tid": {strconv.FormatInt(termID, 10)},
	})
}
