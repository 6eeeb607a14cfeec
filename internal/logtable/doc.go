// Package logtable formats raw task logs and model statistics into
// fixed-width text tables.
//
// Two record kinds are supported, one record per line:
//
//	taskId: 12, taskName: xm_jj_0716 mobileListSize: 3 areaSumCount: 7 areaCountMap: {北京=4, 上海=3}
//	companyId: 1, industryId: 2, startDate: 2025-07-01 00:00:00, endDate: 2025-07-31 23:59:59, modelName:jja20-3 countNum:9 areaCountMap: {北京=9}
//
// Each record becomes a table whose area rows are sorted by count,
// largest first. Task logs end with the per-area totals over all records,
// model statistics with the total count.
package logtable
