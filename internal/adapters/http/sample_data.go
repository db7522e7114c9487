package httpadapter

// Canned CSVs served for quick frontend testing. Column layouts match the
// ingestion contract for each collection.
var sampleCSV = map[string]string{
	"orders": `order_date,customer_id,product_id,product_name,category,quantity,price
2024-01-15,C001,P001,Laptop,Electronics,1,1200
2024-01-16,C002,P002,Mouse,Electronics,2,25
2024-01-17,C001,P003,Keyboard,Electronics,1,75
2024-01-18,C003,P004,Monitor,Electronics,1,300
2024-01-19,C004,P001,Laptop,Electronics,1,1200
`,
	"customers": `customer_id,name,email,join_date
C001,John Doe,john@example.com,2023-06-15
C002,Jane Smith,jane@example.com,2023-08-22
C003,Bob Johnson,bob@example.com,2023-09-10
C004,Alice Brown,alice@example.com,2023-10-05
`,
	"inventory": `product_id,product_name,category,current_stock,reorder_point,unit_cost
P001,Laptop,Electronics,15,10,800
P002,Mouse,Electronics,50,20,10
P003,Keyboard,Electronics,30,15,35
P004,Monitor,Electronics,8,10,180
`,
}
